package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cafelife/menuqr/deploy"
)

// NewDeployCmd creates the deploy command.
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [target]",
		Short: "Upload the menu page",
		Long: `Deploy uploads the menu's index.html to a static host and prints its
public URL. Without a target an interactive menu is shown.

Targets: netlify (1), github (2), vercel (3), archive (4), exit (5).
Tokens are read from the config's environment (GITHUB_TOKEN, VERCEL_TOKEN,
NETLIFY_AUTH_TOKEN), from --token, or asked for.

Examples:
  menuqr deploy
  menuqr deploy netlify --qr --no-open
  menuqr deploy github --repo cafe-menu`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDeployCmd,
	}

	cmd.Flags().String("html", "", "HTML file to upload (default: first of deploy.html_paths)")
	cmd.Flags().String("token", "", "Access token for the chosen target")
	cmd.Flags().String("repo", "", "GitHub repository name")
	cmd.Flags().Bool("open", false, "Open the site without asking")
	cmd.Flags().Bool("no-open", false, "Do not offer to open the site")
	cmd.Flags().Bool("qr", false, "Generate QR codes without asking")
	cmd.Flags().Bool("no-qr", false, "Do not offer QR generation")
	cmd.MarkFlagsMutuallyExclusive("open", "no-open")
	cmd.MarkFlagsMutuallyExclusive("qr", "no-qr")

	return cmd
}

func runDeployCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	p := newConsolePrompter(cmd.InOrStdin(), w)

	htmlPath, _ := cmd.Flags().GetString("html")
	if htmlPath == "" {
		if htmlPath, err = deploy.FindHTML(a.cfg.Deploy.HTMLPaths); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, a.theme.Faint.Render("HTML file: "+htmlPath))

	var target deploy.Target
	if len(args) == 1 {
		if target, err = deploy.ParseTarget(args[0]); err != nil {
			return err
		}
	} else if target, err = p.chooseTarget(a.theme); err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("token")
	repo, _ := cmd.Flags().GetString("repo")
	req := deploy.Request{
		Target:      target,
		HTMLPath:    htmlPath,
		Token:       token,
		Repo:        repo,
		OpenBrowser: answerFlag(cmd, "open", "no-open"),
		GenerateQR:  answerFlag(cmd, "qr", "no-qr"),
	}

	d := deploy.NewDispatcher(a.cfg, deploy.SystemHooks(newComposer(a.cfg, a.log)), p, a.log)
	out, err := d.Run(cmd.Context(), req)
	if errors.Is(err, deploy.ErrCancelled) {
		fmt.Fprintln(w, a.theme.Faint.Render("Nothing deployed."))
		return nil
	}
	if err != nil {
		return err
	}
	report(w, a.theme, out)
	return nil
}

// answerFlag maps a yes/no flag pair to a preset answer.
func answerFlag(cmd *cobra.Command, yes, no string) deploy.Answer {
	if v, _ := cmd.Flags().GetBool(yes); v {
		return deploy.Yes
	}
	if v, _ := cmd.Flags().GetBool(no); v {
		return deploy.No
	}
	return deploy.Ask
}

// report prints the outcome. An upload failure is not an exit error.
func report(w io.Writer, t Theme, out deploy.Outcome) {
	switch {
	case out.Err != nil:
		fmt.Fprintln(w, t.Error.Render(fmt.Sprintf("Upload to %s failed: %v", out.Target, out.Err)))
		fmt.Fprintln(w, t.Faint.Render("Tip: `menuqr deploy archive` builds a zip for manual upload."))
	case out.Archive != nil:
		t.list(w, "Archive ready", out.Archive.Instructions)
	case out.URL != "":
		t.banner(w, "Your menu is live", out.URL)
		if len(out.QRFiles) > 0 {
			t.list(w, "QR files", out.QRFiles)
		}
	}
}
