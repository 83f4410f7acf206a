package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/cafelife/menuqr/api"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the menu page and generated QR files locally",
		Long: `Preview starts a local HTTP server:

  /          the menu HTML
  /gallery   generated artwork
  /qr        JSON list of generated files
  /qr/data   ?url=... returns a plain code as base64 PNG
  /status    health and counts`,
		Args: cobra.NoArgs,
		RunE: runPreviewCmd,
	}

	cmd.Flags().IntP("port", "p", 0, "Listen port (default preview_port)")
	cmd.Flags().Bool("open", false, "Open the gallery in the browser")

	return cmd
}

func runPreviewCmd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = a.cfg.PreviewPort
	}
	open, _ := cmd.Flags().GetBool("open")

	local := fmt.Sprintf("http://localhost:%d", port)
	a.theme.banner(cmd.OutOrStdout(), "Preview running", local+"/", local+"/gallery", a.theme.Faint.Render("Ctrl-C to stop"))
	if open {
		if err := browser.OpenURL(local + "/gallery"); err != nil {
			a.log.Debug("browser open skipped", "error", err)
		}
	}

	return api.ListenAndServe(cmd.Context(), fmt.Sprintf(":%d", port), &api.Server{
		HTMLPaths: a.cfg.Deploy.HTMLPaths,
		OutputDir: a.cfg.OutputDir,
		Log:       a.log,
		Version:   getVersion(),
	})
}
