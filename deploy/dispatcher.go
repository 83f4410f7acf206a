package deploy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cafelife/menuqr/config"
)

// Answer presets a yes/no question so it is not asked interactively.
type Answer int

const (
	Ask Answer = iota
	Yes
	No
)

// Prompter is the console side of the dispatcher.
type Prompter interface {
	// Ask reads one line; secret input is not echoed.
	Ask(label string, secret bool) (string, error)
	// Confirm asks a yes/no question.
	Confirm(question string) bool
}

// Request selects a target and carries per-run overrides of the config.
type Request struct {
	Target Target
	// HTMLPath skips the candidate search when set.
	HTMLPath    string
	Token       string
	Repo        string
	OpenBrowser Answer
	GenerateQR  Answer
}

// Outcome reports what a run produced. URL is empty when the upload failed
// or the target was the archive.
type Outcome struct {
	Target   Target
	HTMLPath string
	URL      string
	Archive  *Archive
	QRFiles  []string
	// Err is the upload failure, already logged.
	Err error
}

// Dispatcher runs one upload and its follow-ups.
type Dispatcher struct {
	cfg      *config.Config
	hooks    Hooks
	prompter Prompter
	client   *http.Client
	log      *slog.Logger
	now      func() time.Time
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the client built from the configured timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithClock replaces time.Now for archive and repository names.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher returns a Dispatcher. prompter may be nil, in which case
// missing tokens are errors and unanswered questions count as "no".
func NewDispatcher(cfg *config.Config, hooks Hooks, prompter Prompter, log *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		hooks:    hooks,
		prompter: prompter,
		log:      log,
		now:      time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	if d.client == nil {
		d.client = NewHTTPClient(cfg.Deploy.Timeout.Duration)
	}
	return d
}

// Run delivers the HTML to req.Target. The returned error covers problems
// before any upload starts (cancelled, no HTML, no token); an upload
// failure is logged and reported in Outcome.Err with an empty URL.
func (d *Dispatcher) Run(ctx context.Context, req Request) (Outcome, error) {
	out := Outcome{Target: req.Target}
	if req.Target == TargetExit {
		return out, ErrCancelled
	}
	if _, ok := targetNames[req.Target]; !ok {
		return out, fmt.Errorf("%w: %d", ErrUnknownTarget, int(req.Target))
	}

	html := req.HTMLPath
	if html == "" {
		var err error
		if html, err = FindHTML(d.cfg.Deploy.HTMLPaths); err != nil {
			return out, err
		}
	}
	out.HTMLPath = html
	d.log.Info("deploying", "target", req.Target.String(), "html", html)

	if req.Target == TargetArchive {
		if err := d.cfg.EnsureOutputDir(); err != nil {
			d.log.Error("archive failed", "error", err)
			out.Err = err
			return out, nil
		}
		arch, err := CreateArchive(html, d.cfg.Deploy.AssetsDir, d.cfg.OutputDir, d.cfg.Deploy.ProjectName, d.now())
		if err != nil {
			d.log.Error("archive failed", "error", err)
			out.Err = err
			return out, nil
		}
		d.log.Info("archive created", "path", arch.Path, "entries", len(arch.Entries))
		out.Archive = &arch
		return out, nil
	}

	dep, err := d.deployer(req)
	if err != nil {
		return out, err
	}
	url, err := dep.Deploy(ctx, html)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status != 0 {
			d.log.Error("upload failed", "target", req.Target.String(), "status", apiErr.Status, "body", apiErr.Body)
		} else {
			d.log.Error("upload failed", "target", req.Target.String(), "error", err)
		}
		out.Err = err
		return out, nil
	}

	out.URL = url
	d.log.Info("deployed", "target", req.Target.String(), "url", url)
	d.afterDeploy(ctx, req, &out)
	return out, nil
}

type deployer interface {
	Deploy(ctx context.Context, htmlPath string) (string, error)
}

func (d *Dispatcher) deployer(req Request) (deployer, error) {
	dc := d.cfg.Deploy
	switch req.Target {
	case TargetNetlify:
		return &NetlifyDeployer{
			Endpoint: dc.Netlify.Endpoint,
			Token:    firstNonEmpty(req.Token, dc.Netlify.Token),
			Client:   d.client,
			Log:      d.log,
		}, nil
	case TargetGitHub:
		token, err := d.token(req.Token, dc.GitHub.Token, "GitHub token (repo scope, https://github.com/settings/tokens)")
		if err != nil {
			return nil, fmt.Errorf("github: %w", err)
		}
		repo := firstNonEmpty(req.Repo, dc.GitHub.Repo)
		if repo == "" {
			repo = fmt.Sprintf("%s-%s", dc.ProjectName, d.now().Format("20060102150405"))
		}
		return &GitHubDeployer{
			API:    dc.GitHub.API,
			Token:  token,
			Repo:   repo,
			Branch: firstNonEmpty(dc.GitHub.Branch, "main"),
			Client: d.client,
			Log:    d.log,
		}, nil
	case TargetVercel:
		token, err := d.token(req.Token, dc.Vercel.Token, "Vercel token (https://vercel.com/account/tokens)")
		if err != nil {
			return nil, fmt.Errorf("vercel: %w", err)
		}
		return &VercelDeployer{
			Endpoint: dc.Vercel.Endpoint,
			Token:    token,
			Project:  dc.ProjectName,
			Client:   d.client,
			Log:      d.log,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, req.Target)
}

// token returns the first configured token or asks for one.
func (d *Dispatcher) token(override, configured, label string) (string, error) {
	if t := firstNonEmpty(override, configured); t != "" {
		return t, nil
	}
	if d.prompter == nil {
		return "", ErrMissingToken
	}
	t, err := d.prompter.Ask(label, true)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if t = strings.TrimSpace(t); t == "" {
		return "", ErrMissingToken
	}
	return t, nil
}

// afterDeploy runs the hooks. Hook failures never fail the deploy.
func (d *Dispatcher) afterDeploy(ctx context.Context, req Request, out *Outcome) {
	if d.hooks.Clipboard != nil {
		if err := d.hooks.Clipboard.Copy(out.URL); err != nil {
			d.log.Debug("clipboard copy skipped", "error", err)
		} else {
			d.log.Info("url copied to clipboard")
		}
	}

	if d.hooks.Browser != nil && d.confirm(req.OpenBrowser, "Open the site in your browser?") {
		if err := d.hooks.Browser.Open(out.URL); err != nil {
			d.log.Debug("browser open skipped", "error", err)
		}
	}

	if d.hooks.QR != nil && d.confirm(req.GenerateQR, "Generate QR codes for this URL?") {
		files, err := d.hooks.QR.Generate(ctx, out.URL)
		if err != nil {
			d.log.Warn("qr generation failed", "error", err)
		}
		out.QRFiles = files
	}
}

func (d *Dispatcher) confirm(a Answer, question string) bool {
	switch a {
	case Yes:
		return true
	case No:
		return false
	}
	return d.prompter != nil && d.prompter.Confirm(question)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// IsYes reports whether a console answer means yes. Turkish "e"/"evet" are
// accepted alongside "y"/"yes".
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "e", "evet", "y", "yes":
		return true
	}
	return false
}
