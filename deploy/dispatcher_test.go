package deploy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func netlifyOK() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"subdomain":"menu-1"}`)
	}))
}

func TestDispatcher_NetlifyWithHooks(t *testing.T) {
	t.Parallel()
	srv := netlifyOK()
	defer srv.Close()

	dir := t.TempDir()
	writeHTML(t, dir)
	clip := &fakeClipboard{}
	br := &fakeBrowser{}
	qr := &fakeQR{}
	p := &fakePrompter{confirm: true}

	d := NewDispatcher(testConfig(dir, srv.URL), Hooks{Clipboard: clip, Browser: br, QR: qr}, p, discard,
		WithHTTPClient(srv.Client()))
	out, err := d.Run(context.Background(), Request{Target: TargetNetlify})
	require.NoError(t, err)
	require.NoError(t, out.Err)

	assert.Equal(t, "https://menu-1.netlify.app", out.URL)
	assert.Equal(t, out.URL, clip.text)
	assert.Equal(t, []string{out.URL}, br.opened)
	assert.Equal(t, []string{out.URL}, qr.urls)
	assert.Equal(t, []string{"qr_codes/a.png"}, out.QRFiles)
	assert.Len(t, p.asked, 2, "browser and qr questions")
}

func TestDispatcher_PresetAnswersSkipPrompts(t *testing.T) {
	t.Parallel()
	srv := netlifyOK()
	defer srv.Close()

	dir := t.TempDir()
	writeHTML(t, dir)
	br := &fakeBrowser{}
	qr := &fakeQR{}
	p := &fakePrompter{confirm: true}

	d := NewDispatcher(testConfig(dir, srv.URL), Hooks{Browser: br, QR: qr}, p, discard, WithHTTPClient(srv.Client()))
	out, err := d.Run(context.Background(), Request{Target: TargetNetlify, OpenBrowser: No, GenerateQR: Yes})
	require.NoError(t, err)
	assert.NotEmpty(t, out.URL)
	assert.Empty(t, br.opened)
	assert.Len(t, qr.urls, 1)
	assert.Empty(t, p.asked)
}

func TestDispatcher_HookFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	srv := netlifyOK()
	defer srv.Close()

	dir := t.TempDir()
	writeHTML(t, dir)
	hooks := Hooks{
		Clipboard: &fakeClipboard{err: ErrUnavailable},
		QR:        &fakeQR{err: errors.New("disk full")},
	}

	d := NewDispatcher(testConfig(dir, srv.URL), hooks, nil, discard, WithHTTPClient(srv.Client()))
	out, err := d.Run(context.Background(), Request{Target: TargetNetlify, GenerateQR: Yes})
	require.NoError(t, err)
	assert.Equal(t, "https://menu-1.netlify.app", out.URL)
	assert.Empty(t, out.QRFiles)
}

func TestDispatcher_UploadFailureYieldsEmptyURL(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeHTML(t, dir)
	qr := &fakeQR{}

	d := NewDispatcher(testConfig(dir, srv.URL), Hooks{QR: qr}, nil, discard, WithHTTPClient(srv.Client()))
	out, err := d.Run(context.Background(), Request{Target: TargetNetlify, GenerateQR: Yes})
	require.NoError(t, err, "upload failures are reported, not returned")
	assert.Empty(t, out.URL)

	var apiErr *APIError
	require.ErrorAs(t, out.Err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, qr.urls, "hooks skipped after failure")
}

func TestDispatcher_GitHubPromptsForToken(t *testing.T) {
	t.Parallel()
	fake := &fakeGitHub{repoState: http.StatusCreated, pagesCode: http.StatusCreated}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	dir := t.TempDir()
	writeHTML(t, dir)
	cfg := testConfig(dir, srv.URL)
	cfg.Deploy.GitHub.Token = ""
	cfg.Deploy.GitHub.Repo = ""
	p := &fakePrompter{answers: []string{" ghp_test "}}

	d := NewDispatcher(cfg, Hooks{}, p, discard, WithHTTPClient(srv.Client()), WithClock(func() time.Time { return fixedNow }))
	out, err := d.Run(context.Background(), Request{Target: TargetGitHub, Repo: "menu"})
	require.NoError(t, err)
	require.NoError(t, out.Err)
	assert.Equal(t, "https://cafelife.github.io/menu", out.URL)
	require.Len(t, p.asked, 1)
	assert.Contains(t, p.asked[0], "GitHub token")
}

func TestDispatcher_DefaultRepoName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := testConfig(dir, "http://127.0.0.1:0")
	cfg.Deploy.GitHub.Token = "ghp_x"
	cfg.Deploy.GitHub.Repo = ""

	d := NewDispatcher(cfg, Hooks{}, nil, discard, WithClock(func() time.Time { return fixedNow }))
	dep, err := d.deployer(Request{Target: TargetGitHub})
	require.NoError(t, err)
	assert.Equal(t, "cafe-life-menu-20261017093015", dep.(*GitHubDeployer).Repo)
}

func TestDispatcher_MissingToken(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeHTML(t, dir)
	cfg := testConfig(dir, "http://127.0.0.1:0")
	cfg.Deploy.Vercel.Token = ""

	// no prompter
	_, err := NewDispatcher(cfg, Hooks{}, nil, discard).Run(context.Background(), Request{Target: TargetVercel})
	assert.ErrorIs(t, err, ErrMissingToken)

	// blank answer
	p := &fakePrompter{answers: []string{"   "}}
	_, err = NewDispatcher(cfg, Hooks{}, p, discard).Run(context.Background(), Request{Target: TargetVercel})
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestDispatcher_Archive(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeHTML(t, dir)
	qr := &fakeQR{}

	d := NewDispatcher(testConfig(dir, "http://127.0.0.1:0"), Hooks{QR: qr}, nil, discard, WithClock(func() time.Time { return fixedNow }))
	out, err := d.Run(context.Background(), Request{Target: TargetArchive, GenerateQR: Yes})
	require.NoError(t, err)
	require.NotNil(t, out.Archive)
	assert.FileExists(t, out.Archive.Path)
	assert.Empty(t, out.URL)
	assert.Empty(t, qr.urls, "no url, no qr chain")
}

func TestDispatcher_ArchiveOutputDirBlocked(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeHTML(t, dir)
	cfg := testConfig(dir, "http://127.0.0.1:0")
	require.NoError(t, os.WriteFile(cfg.OutputDir, []byte("not a dir"), 0o600))

	out, err := NewDispatcher(cfg, Hooks{}, nil, discard).Run(context.Background(), Request{Target: TargetArchive})
	require.NoError(t, err)
	assert.Nil(t, out.Archive)
	assert.ErrorContains(t, out.Err, "creating output dir")
}

func TestDispatcher_ExitAndMissingHTML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	d := NewDispatcher(testConfig(dir, "http://127.0.0.1:0"), Hooks{}, nil, discard)

	_, err := d.Run(context.Background(), Request{Target: TargetExit})
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = d.Run(context.Background(), Request{Target: TargetNetlify})
	assert.ErrorIs(t, err, ErrHTMLNotFound)

	_, err = d.Run(context.Background(), Request{Target: Target(42)})
	assert.ErrorIs(t, err, ErrUnknownTarget)
}
