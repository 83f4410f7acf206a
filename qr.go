package main

import (
	"fmt"

	"github.com/mdp/qrterminal/v3"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/cafelife/menuqr/composer"
)

// NewQRCmd creates the qr command.
func NewQRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr [url]",
		Short: "Generate QR artwork for the menu URL",
		Long: `Generate renders every colour variant, the table tent, the sticker
sheet and a print guide into the output directory.

Examples:
  # Everything, for a deployed menu
  menuqr qr https://cafe-life-menu.netlify.app

  # Just the sticker sheet, plus a preview in the terminal
  menuqr qr cafe-life-menu.netlify.app -p stickers --terminal`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQRCmd,
	}

	cmd.Flags().StringP("product", "p", "all", "What to render: all, primary, tent, stickers")
	cmd.Flags().StringP("out", "o", "", "Output directory (overrides output_dir)")
	cmd.Flags().Bool("terminal", false, "Also print the code in the terminal")
	cmd.Flags().Bool("open", false, "Open the output directory when done")

	return cmd
}

func runQRCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	product, _ := cmd.Flags().GetString("product")
	outDir, _ := cmd.Flags().GetString("out")
	showTerminal, _ := cmd.Flags().GetBool("terminal")
	openDir, _ := cmd.Flags().GetBool("open")
	if outDir != "" {
		a.cfg.OutputDir = outDir
	}
	if err := a.cfg.EnsureOutputDir(); err != nil {
		return err
	}

	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		p := newConsolePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if raw, err = p.Ask("Menu URL (e.g. https://cafe-life-menu.netlify.app)", false); err != nil {
			return fmt.Errorf("read url: %w", err)
		}
	}
	url, err := composer.ParseMenuURL(raw)
	if err != nil {
		return err
	}

	files, genErr := generate(newComposer(a.cfg, a.log), product, url)
	w := cmd.OutOrStdout()
	if len(files) > 0 {
		a.theme.list(w, fmt.Sprintf("Wrote %d file(s) to %s", len(files), a.cfg.OutputDir), files)
	}
	if showTerminal {
		qrterminal.Generate(url, qrterminal.M, w)
	}
	if openDir {
		if err := browser.OpenFile(a.cfg.OutputDir); err != nil {
			a.log.Warn("could not open output directory", "dir", a.cfg.OutputDir, "error", err)
		}
	}
	return genErr
}

// generate renders one product, or all of them, for an already validated url.
func generate(c *composer.Composer, product, url string) ([]string, error) {
	single := func(p string, err error) ([]string, error) {
		if p == "" {
			return nil, err
		}
		return []string{p}, err
	}
	switch product {
	case "all", "":
		res, err := c.All(url)
		return res.Files(), err
	case "primary":
		return c.Primary(url)
	case "tent":
		return single(c.TableTent(url))
	case "stickers":
		return single(c.Stickers(url))
	}
	return nil, fmt.Errorf("unknown product %q (all, primary, tent, stickers)", product)
}
