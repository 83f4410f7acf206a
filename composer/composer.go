package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/adrg/xdg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Brand is the text printed on the products. Titles are upper-cased with
// the casing rules of Locale, so "Dijital Menü" becomes "DİJİTAL MENÜ" for "tr".
type Brand struct {
	Name         string
	Subtitle     string
	Instruction  string
	TentLines    []string
	WiFi         string
	StickerLabel string
	// TableLabel is a fmt pattern taking the table number.
	TableLabel string
	Locale     string
}

// Options configures a Composer.
type Options struct {
	OutputDir string
	Brand     Brand
	// Palette defaults to DefaultPalette when nil.
	Palette   []StyleVariant
	LogoPaths []string

	FontName     string
	FontFallback FallbackMode
	// FontDirs defaults to the platform font directories when nil.
	FontDirs []string

	// Now stamps file names; defaults to time.Now.
	Now func() time.Time
}

// Composer renders and writes the QR products.
type Composer struct {
	opts  Options
	fonts *Fonts
	upper cases.Caser
	log   *slog.Logger
}

// Result lists what All wrote.
type Result struct {
	Codes     []string
	TableTent string
	Stickers  string
	Guide     string
}

// Files returns every written path in generation order.
func (r Result) Files() []string {
	files := append([]string{}, r.Codes...)
	for _, p := range []string{r.TableTent, r.Stickers, r.Guide} {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}

// New returns a Composer. log must not be nil.
func New(opts Options, log *slog.Logger) *Composer {
	if opts.OutputDir == "" {
		opts.OutputDir = "qr_codes"
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Brand.TableLabel == "" {
		opts.Brand.TableLabel = "Table %d"
	} else if !strings.Contains(opts.Brand.TableLabel, "%d") {
		opts.Brand.TableLabel += " %d"
	}
	dirs := opts.FontDirs
	if dirs == nil {
		dirs = xdg.FontDirs
	}
	tag := language.Make(opts.Brand.Locale)
	return &Composer{
		opts:  opts,
		fonts: NewFonts(opts.FontName, opts.FontFallback, dirs, log),
		upper: cases.Upper(tag),
		log:   log,
	}
}

// All validates url and renders every product. A failing product is logged
// and skipped; the joined errors are returned with whatever was written.
func (c *Composer) All(url string) (Result, error) {
	var res Result
	url, err := ParseMenuURL(url)
	if err != nil {
		return res, err
	}
	c.log.Info("generating QR products", "url", url, "output_dir", c.opts.OutputDir)

	var errs []error
	if res.Codes, err = c.Primary(url); err != nil {
		c.log.Error("primary codes failed", "error", err)
		errs = append(errs, err)
	}
	if res.TableTent, err = c.TableTent(url); err != nil {
		c.log.Error("table tent failed", "error", err)
		errs = append(errs, err)
	}
	if res.Stickers, err = c.Stickers(url); err != nil {
		c.log.Error("sticker sheet failed", "error", err)
		errs = append(errs, err)
	}
	if len(res.Files()) > 0 {
		if res.Guide, err = c.WriteGuide(url, res); err != nil {
			c.log.Warn("print guide failed", "error", err)
		}
	}
	return res, errors.Join(errs...)
}

// Generate runs All and returns the written paths. It lets the deploy flow
// chain into QR generation.
func (c *Composer) Generate(_ context.Context, url string) ([]string, error) {
	res, err := c.All(url)
	return res.Files(), err
}

// ensureDir creates the output directory before a product is written.
func (c *Composer) ensureDir() error {
	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", c.opts.OutputDir, err)
	}
	return nil
}

// filePath builds "<slug>_<kind>_<YYYYMMDD_HHMMSS>.<ext>" under the output dir.
func (c *Composer) filePath(kind, ext string) string {
	name := fmt.Sprintf("%s_%s_%s.%s", Slug(c.opts.Brand.Name), kind, c.opts.Now().Format("20060102_150405"), ext)
	return filepath.Join(c.opts.OutputDir, name)
}

func (c *Composer) title(s string) string {
	return c.upper.String(s)
}

func (c *Composer) tableLabel(n int) string {
	return c.title(fmt.Sprintf(c.opts.Brand.TableLabel, n))
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a brand name into a file-name prefix: "Çay Evi" -> "cay_evi".
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	s := nonSlug.ReplaceAllString(strings.ToLower(plain), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "menu"
	}
	return s
}
