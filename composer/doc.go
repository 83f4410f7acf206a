// Package composer renders the branded menu QR products: one plain code per
// palette entry, a foldable table-tent card and an A4 sheet of four table
// stickers. Every product is a pure function of the URL and the Options; the
// only side effect is writing the PNG files into the output directory.
//
// Layout coordinates are fixed pixel positions for 300 DPI print output.
// Text is drawn with fogleman/gg; when the requested system font is missing
// the embedded Go Regular face (or a bitmap face) is used instead, so font
// problems never fail a run.
package composer
