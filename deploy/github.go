package deploy

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// GitHubDeployer publishes the HTML to a repository served by GitHub Pages.
type GitHubDeployer struct {
	API    string
	Token  string
	Repo   string
	Branch string
	Client *http.Client
	Log    *slog.Logger
}

type githubUser struct {
	Login string `json:"login"`
}

type githubRepo struct {
	Owner githubUser `json:"owner"`
}

type githubContent struct {
	SHA string `json:"sha"`
}

// Deploy creates (or reuses) the repository, writes index.html on the
// branch and asks Pages to serve it. A Pages failure is only logged.
func (d *GitHubDeployer) Deploy(ctx context.Context, htmlPath string) (string, error) {
	if d.Token == "" {
		return "", fmt.Errorf("github: %w", ErrMissingToken)
	}
	html, err := os.ReadFile(htmlPath) //nolint:gosec // located by FindHTML
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}

	owner, err := d.createRepo(ctx)
	if err != nil {
		return "", err
	}
	d.Log.Info("github repository ready", "owner", owner, "repo", d.Repo)

	sha, err := d.existingSHA(ctx, owner)
	if err != nil {
		return "", err
	}
	if err := d.putIndex(ctx, owner, html, sha); err != nil {
		return "", err
	}
	if err := d.enablePages(ctx, owner); err != nil {
		d.Log.Warn("github pages not enabled, enable it in the repository settings", "error", err)
	}
	return fmt.Sprintf("https://%s.github.io/%s", owner, d.Repo), nil
}

// createRepo returns the owner login. 422 means the repository already
// exists; the owner is then the authenticated user.
func (d *GitHubDeployer) createRepo(ctx context.Context) (string, error) {
	payload := map[string]any{
		"name":        d.Repo,
		"description": "Digital menu",
		"private":     false,
		"auto_init":   true,
	}
	req, err := d.newRequest(ctx, http.MethodPost, "/user/repos", payload)
	if err != nil {
		return "", err
	}
	var repo githubRepo
	status, err := send(d.Client, req, "github create repo", &repo, func(s int) bool {
		return s == http.StatusCreated || s == http.StatusUnprocessableEntity
	})
	if err != nil {
		return "", err
	}
	if status == http.StatusCreated && repo.Owner.Login != "" {
		return repo.Owner.Login, nil
	}

	d.Log.Debug("repository exists, resolving owner", "repo", d.Repo)
	req, err = d.newRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return "", err
	}
	var user githubUser
	if _, err := send(d.Client, req, "github get user", &user, nil); err != nil {
		return "", err
	}
	if user.Login == "" {
		return "", &APIError{Op: "github get user", Status: http.StatusOK, Body: "response has no login"}
	}
	return user.Login, nil
}

// existingSHA returns the blob sha of index.html, or "" when absent.
func (d *GitHubDeployer) existingSHA(ctx context.Context, owner string) (string, error) {
	path := d.contentsPath(owner) + "?ref=" + url.QueryEscape(d.Branch)
	req, err := d.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	var content githubContent
	status, err := send(d.Client, req, "github get contents", &content, func(s int) bool {
		return s == http.StatusOK || s == http.StatusNotFound
	})
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", nil
	}
	return content.SHA, nil
}

func (d *GitHubDeployer) putIndex(ctx context.Context, owner string, html []byte, sha string) error {
	payload := map[string]any{
		"message": "Update digital menu",
		"content": base64.StdEncoding.EncodeToString(html),
		"branch":  d.Branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}
	req, err := d.newRequest(ctx, http.MethodPut, d.contentsPath(owner), payload)
	if err != nil {
		return err
	}
	_, err = send(d.Client, req, "github upload index.html", nil, nil)
	return err
}

// enablePages treats 409 (already enabled) as success.
func (d *GitHubDeployer) enablePages(ctx context.Context, owner string) error {
	payload := map[string]any{
		"source": map[string]string{"branch": d.Branch, "path": "/"},
	}
	req, err := d.newRequest(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/pages", owner, d.Repo), payload)
	if err != nil {
		return err
	}
	_, err = send(d.Client, req, "github enable pages", nil, func(s int) bool {
		return is2xx(s) || s == http.StatusConflict
	})
	return err
}

func (d *GitHubDeployer) contentsPath(owner string) string {
	return fmt.Sprintf("/repos/%s/%s/contents/index.html", owner, d.Repo)
}

func (d *GitHubDeployer) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode github payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(d.API, "/")+path, body)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
