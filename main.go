// Command menuqr renders branded QR codes for a digital menu and publishes
// the menu page to a static host.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cafelife/menuqr/composer"
	"github.com/cafelife/menuqr/config"
	"github.com/cafelife/menuqr/logging"
)

func main() {
	Execute()
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menuqr",
		Short: "Branded menu QR codes and one-shot menu deploys",
		Long: `menuqr generates print-ready QR artwork for a cafe's digital menu
(colour variants, a table tent and an A4 sticker sheet) and uploads the menu
page to Netlify, GitHub Pages or Vercel, or packs it for manual upload.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file (default ./menuqr.yaml or $XDG_CONFIG_HOME/menuqr/config.yaml)")
	cmd.PersistentFlags().String("env-file", ".env", "Dotenv file with tokens")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewQRCmd())
	cmd.AddCommand(NewDeployCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, DefaultTheme().Error.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// app is what every command loads before doing work.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	theme Theme
}

func loadApp(cmd *cobra.Command) (*app, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	path := config.FindConfigFile(configPath)
	cfg, err := config.Load(path, envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, verbose)
	log.Debug("config loaded", "path", path, "output_dir", cfg.OutputDir)
	return &app{cfg: cfg, log: log, theme: DefaultTheme()}, nil
}

func newComposer(cfg *config.Config, log *slog.Logger) *composer.Composer {
	b := cfg.Brand
	return composer.New(composer.Options{
		OutputDir: cfg.OutputDir,
		Brand: composer.Brand{
			Name:         b.Name,
			Subtitle:     b.Subtitle,
			Instruction:  b.Instruction,
			TentLines:    b.TentLines,
			WiFi:         b.WiFi,
			StickerLabel: b.StickerLabel,
			TableLabel:   b.TableLabel,
			Locale:       b.Locale,
		},
		LogoPaths:    cfg.LogoPaths,
		FontName:     cfg.Font.Name,
		FontFallback: composer.FallbackMode(cfg.Font.Fallback),
	}, log)
}
