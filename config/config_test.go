package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.Equal(t, "qr_codes", cfg.OutputDir)
	assert.Equal(t, "Cafe Life", cfg.Brand.Name)
	assert.Len(t, cfg.LogoPaths, 4)
	assert.Equal(t, []string{"index.html", "assets/html/index.html"}, cfg.Deploy.HTMLPaths)
	assert.Equal(t, 60*time.Second, cfg.Deploy.Timeout.Duration)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "nope.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, Defaults().OutputDir, cfg.OutputDir)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menuqr.yaml")
	yml := `
output_dir: out
brand:
  name: Kahve Evi
  locale: tr
deploy:
  timeout: 5s
  github:
    repo: menu-site
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "Kahve Evi", cfg.Brand.Name)
	assert.Equal(t, "tr", cfg.Brand.Locale)
	assert.Equal(t, 5*time.Second, cfg.Deploy.Timeout.Duration)
	assert.Equal(t, "menu-site", cfg.Deploy.GitHub.Repo)
	// untouched nested defaults survive
	assert.Equal(t, "https://api.github.com", cfg.Deploy.GitHub.API)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deploy:\n  timeout: forever\n"), 0o600))

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_DotenvAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GITHUB_TOKEN=from-dotenv\nVERCEL_TOKEN=vercel-dotenv\nMENUQR_OUTPUT_DIR=dotenv-out\n"), 0o600))

	t.Setenv("MENUQR_OUTPUT_DIR", "env-out")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("MENUQR_GITHUB_TOKEN", "")
	t.Setenv("VERCEL_TOKEN", "")
	t.Setenv("MENUQR_VERCEL_TOKEN", "")

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "env-out", cfg.OutputDir, "process env wins over .env")
	assert.Equal(t, "vercel-dotenv", cfg.Deploy.Vercel.Token)
	// an empty process variable does not shadow the .env value
	assert.Equal(t, "from-dotenv", cfg.Deploy.GitHub.Token)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"MENUQR_LOG_LEVEL":      "debug",
		"MENUQR_DEPLOY_TIMEOUT": "3s",
		"NETLIFY_AUTH_TOKEN":    " nfp_abc ",
		"MENUQR_GITHUB_TOKEN":   "primary",
		"GITHUB_TOKEN":          "secondary",
		"MENUQR_FONT":           "DejaVuSans.ttf",
	}
	cfg := Defaults()
	applyEnvOverrides(cfg, func(k string) string { return env[k] })

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Deploy.Timeout.Duration)
	assert.Equal(t, "nfp_abc", cfg.Deploy.Netlify.Token)
	assert.Equal(t, "primary", cfg.Deploy.GitHub.Token)
	assert.Equal(t, "DejaVuSans.ttf", cfg.Font.Name)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = " " }, ErrNoOutputDir},
		{"zero timeout", func(c *Config) { c.Deploy.Timeout = Duration{} }, ErrInvalidTimeout},
		{"no html paths", func(c *Config) { c.Deploy.HTMLPaths = nil }, ErrNoHTMLPaths},
		{"bad fallback", func(c *Config) { c.Font.Fallback = "comic" }, ErrInvalidFallback},
		{"bitmap fallback", func(c *Config) { c.Font.Fallback = "bitmap" }, nil},
		{"table label without verb", func(c *Config) { c.Brand.TableLabel = "Masa" }, ErrInvalidTableLabel},
		{"table label two verbs", func(c *Config) { c.Brand.TableLabel = "%d / %d" }, ErrInvalidTableLabel},
		{"table label other verb", func(c *Config) { c.Brand.TableLabel = "Table %s" }, ErrInvalidTableLabel},
		{"localized table label", func(c *Config) { c.Brand.TableLabel = "Masa %d" }, nil},
		{"label with literal percent", func(c *Config) { c.Brand.TableLabel = "%d %% off" }, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "custom.yaml", FindConfigFile("custom.yaml"))
}

func TestEnsureOutputDir(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.OutputDir = filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, cfg.EnsureOutputDir())

	info, err := os.Stat(cfg.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDurationYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	d := Duration{90 * time.Second}
	out, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", out)
}
