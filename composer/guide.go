package composer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/markdown"
)

// printTips are shown in the guide next to the file list.
var printTips = []string{
	"Use the colored codes in different spots around the venue.",
	"Print the table tent on A4 and fold it in half.",
	"Cut out the stickers and put one on each table.",
	"Never print a code smaller than 5 cm x 5 cm.",
	"Test every print with a phone camera before handing it out.",
}

// WriteGuide writes a Markdown print guide describing res next to the images.
func (c *Composer) WriteGuide(url string, res Result) (string, error) {
	if err := c.ensureDir(); err != nil {
		return "", err
	}
	path := c.filePath("print_guide", "md")
	f, err := os.Create(path) //nolint:gosec // path is built from the output dir
	if err != nil {
		return "", fmt.Errorf("create guide: %w", err)
	}
	defer f.Close()

	rows := make([][]string, 0, len(res.Codes)+2)
	for i, p := range res.Codes {
		token := ""
		if i < len(c.opts.Palette) {
			token = c.opts.Palette[i].Token
		}
		rows = append(rows, []string{"`" + filepath.Base(p) + "`", "QR code (" + token + ")", fmt.Sprintf("%dx%d", primaryWidth, primaryHeight)})
	}
	if res.TableTent != "" {
		rows = append(rows, []string{"`" + filepath.Base(res.TableTent) + "`", "Table tent", fmt.Sprintf("%dx%d @ %d DPI", tentWidth, tentHeight, printDPI)})
	}
	if res.Stickers != "" {
		rows = append(rows, []string{"`" + filepath.Base(res.Stickers) + "`", "Sticker sheet (4 tables)", fmt.Sprintf("%dx%d @ %d DPI", sheetWidth, sheetHeight, printDPI)})
	}

	md := markdown.NewMarkdown(f)
	md.H1(c.opts.Brand.Name + " print guide")
	md.PlainText("")
	md.PlainTextf("Menu URL: %s", url)
	md.PlainText("")
	md.H2("Files")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"File", "Product", "Size"},
		Rows:   rows,
	})
	md.PlainText("")
	md.H2("Printing tips")
	md.PlainText("")
	md.BulletList(printTips...)
	md.PlainText("")
	md.Note("Scan a printed sample before producing the full batch.")
	if err := md.Build(); err != nil {
		return "", fmt.Errorf("write guide: %w", err)
	}
	c.log.Info("print guide written", "file", path)
	return path, nil
}
