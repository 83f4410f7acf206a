// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName is used for the XDG config directory and default file names.
const AppName = "menuqr"

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "menuqr.yaml"

// Brand holds every piece of text printed on the generated images.
type Brand struct {
	Name         string   `yaml:"name"`
	Subtitle     string   `yaml:"subtitle"`
	Instruction  string   `yaml:"instruction"`
	TentLines    []string `yaml:"tent_lines"`
	WiFi         string   `yaml:"wifi"`
	StickerLabel string   `yaml:"sticker_label"`
	TableLabel   string   `yaml:"table_label"`
	Locale       string   `yaml:"locale"`
}

// Font selects the named system font and what happens when it is missing.
type Font struct {
	Name     string `yaml:"name"`
	Fallback string `yaml:"fallback"` // "goregular" or "bitmap"
}

// NetlifyConfig configures the drop-style deploy.
type NetlifyConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"-"`
}

// GitHubConfig configures the git-pages deploy.
type GitHubConfig struct {
	API    string `yaml:"api"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
	Token  string `yaml:"-"`
}

// VercelConfig configures the serverless deploy.
type VercelConfig struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"-"`
}

// Deploy groups the upload settings.
type Deploy struct {
	ProjectName string        `yaml:"project_name"`
	HTMLPaths   []string      `yaml:"html_paths"`
	AssetsDir   string        `yaml:"assets_dir"`
	Timeout     Duration      `yaml:"timeout"`
	Netlify     NetlifyConfig `yaml:"netlify"`
	GitHub      GitHubConfig  `yaml:"github"`
	Vercel      VercelConfig  `yaml:"vercel"`
}

// Config holds all application configuration values.
type Config struct {
	OutputDir   string   `yaml:"output_dir"`
	LogLevel    string   `yaml:"log_level"`
	LogoPaths   []string `yaml:"logo_paths"`
	PreviewPort int      `yaml:"preview_port"`
	Brand       Brand    `yaml:"brand"`
	Font        Font     `yaml:"font"`
	Deploy      Deploy   `yaml:"deploy"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Validation errors returned by Config.Validate.
var (
	ErrNoOutputDir       = errors.New("invalid config: output_dir must not be empty")
	ErrInvalidTimeout    = errors.New("invalid config: deploy.timeout must be positive")
	ErrNoHTMLPaths       = errors.New("invalid config: deploy.html_paths must not be empty")
	ErrInvalidFallback   = errors.New("invalid config: font.fallback must be goregular or bitmap")
	ErrInvalidTableLabel = errors.New("invalid config: brand.table_label must contain exactly one %d")
)

// Defaults returns a Config populated with the values used when no file or
// environment override is present.
func Defaults() *Config {
	return &Config{
		OutputDir: "qr_codes",
		LogLevel:  "info",
		LogoPaths: []string{
			"assets/images/logo.jpg",
			"assets/images/logo.png",
			"logo.jpg",
			"logo.png",
		},
		PreviewPort: 8555,
		Brand: Brand{
			Name:        "Cafe Life",
			Subtitle:    "Digital Menu",
			Instruction: "Point your camera at the QR code",
			TentLines: []string{
				"Scan the QR code",
				"View the menu",
				"Place your order",
			},
			WiFi:         "WiFi: CafeLife_Guest",
			StickerLabel: "Cafe Life Menu",
			TableLabel:   "Table %d",
			Locale:       "en",
		},
		Font: Font{
			Name:     "arial.ttf",
			Fallback: "goregular",
		},
		Deploy: Deploy{
			ProjectName: "cafe-life-menu",
			HTMLPaths:   []string{"index.html", "assets/html/index.html"},
			AssetsDir:   "assets/images",
			Timeout:     Duration{60 * time.Second},
			Netlify:     NetlifyConfig{Endpoint: "https://api.netlify.com"},
			GitHub:      GitHubConfig{API: "https://api.github.com", Branch: "main"},
			Vercel:      VercelConfig{Endpoint: "https://api.vercel.com"},
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Values from envFile (a dotenv file,
// skipped when missing) and then the process environment override the file.
func Load(path, envFile string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// File doesn't exist: proceed with defaults.
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = vals
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading env file: %w", err)
		}
	}

	applyEnvOverrides(cfg, func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	})
	return cfg, nil
}

// FindConfigFile returns configPath when given, otherwise the first existing
// file among ./menuqr.yaml and $XDG_CONFIG_HOME/menuqr/config.yaml. An empty
// string means no file was found and defaults apply.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	if p, err := xdg.SearchConfigFile(filepath.Join(AppName, "config.yaml")); err == nil {
		return p
	}
	return ""
}

// applyEnvOverrides applies MENUQR_* and the well-known token variables to cfg.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("MENUQR_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("MENUQR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("MENUQR_BRAND_NAME"); v != "" {
		cfg.Brand.Name = v
	}
	if v := getenv("MENUQR_LOCALE"); v != "" {
		cfg.Brand.Locale = v
	}
	if v := getenv("MENUQR_FONT"); v != "" {
		cfg.Font.Name = v
	}
	if v := getenv("MENUQR_PROJECT_NAME"); v != "" {
		cfg.Deploy.ProjectName = v
	}
	if v := getenv("MENUQR_DEPLOY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Deploy.Timeout = Duration{d}
		}
	}
	if v := getenv("MENUQR_GITHUB_REPO"); v != "" {
		cfg.Deploy.GitHub.Repo = v
	}

	cfg.Deploy.Netlify.Token = firstNonEmpty(getenv("MENUQR_NETLIFY_TOKEN"), getenv("NETLIFY_AUTH_TOKEN"), cfg.Deploy.Netlify.Token)
	cfg.Deploy.GitHub.Token = firstNonEmpty(getenv("MENUQR_GITHUB_TOKEN"), getenv("GITHUB_TOKEN"), cfg.Deploy.GitHub.Token)
	cfg.Deploy.Vercel.Token = firstNonEmpty(getenv("MENUQR_VERCEL_TOKEN"), getenv("VERCEL_TOKEN"), cfg.Deploy.Vercel.Token)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Validate checks the values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return ErrNoOutputDir
	}
	if c.Deploy.Timeout.Duration <= 0 {
		return ErrInvalidTimeout
	}
	if len(c.Deploy.HTMLPaths) == 0 {
		return ErrNoHTMLPaths
	}
	if !validTableLabel(c.Brand.TableLabel) {
		return ErrInvalidTableLabel
	}
	switch c.Font.Fallback {
	case "", "goregular", "bitmap":
	default:
		return ErrInvalidFallback
	}
	return nil
}

// validTableLabel accepts a fmt pattern whose only verb is a single %d.
func validTableLabel(label string) bool {
	rest := strings.ReplaceAll(label, "%%", "")
	return strings.Count(rest, "%d") == 1 && strings.Count(rest, "%") == 1
}

// EnsureOutputDir creates the OutputDir if it does not already exist.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", c.OutputDir, err)
	}
	return nil
}
