// Package config loads and validates the docconv configuration.
//
// Values come from, in increasing priority: built-in defaults, a YAML
// config file, DOCCONV_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	docconv "github.com/porticus-lab/go-docconv"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DOCCONV"

// Config holds all configuration for the docconv binaries.
type Config struct {
	Debug  bool         `mapstructure:"debug" yaml:"debug"`
	Page   PageConfig   `mapstructure:"page" yaml:"page"`
	Image  ImageConfig  `mapstructure:"image" yaml:"image"`
	PDF    PDFConfig    `mapstructure:"pdf" yaml:"pdf"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Watch  WatchConfig  `mapstructure:"watch" yaml:"watch"`
	Chrome ChromeConfig `mapstructure:"chrome" yaml:"chrome"`
}

// PageConfig holds the layout of generated PDF pages.
type PageConfig struct {
	Size        string  `mapstructure:"size" yaml:"size"`
	Orientation string  `mapstructure:"orientation" yaml:"orientation"`
	MarginCM    float64 `mapstructure:"margin_cm" yaml:"margin_cm"`
	FontSize    float64 `mapstructure:"font_size" yaml:"font_size"`
}

// ImageConfig holds raster encoder settings.
type ImageConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
}

// PDFConfig selects how text is read from PDF input.
type PDFConfig struct {
	// TextMode is "heuristic" (printable ASCII of the raw bytes) or
	// "parsed" (content stream text).
	TextMode string `mapstructure:"text_mode" yaml:"text_mode"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `mapstructure:"host" yaml:"host"`
	Port        int      `mapstructure:"port" yaml:"port"`
	MaxUploadMB int64    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// WatchConfig holds folder watcher settings.
type WatchConfig struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
	Target string `mapstructure:"target" yaml:"target"`
}

// ChromeConfig controls the optional headless browser used for html→pdf.
type ChromeConfig struct {
	Enabled      bool          `mapstructure:"enabled" yaml:"enabled"`
	Path         string        `mapstructure:"path" yaml:"path"`
	NoSandbox    bool          `mapstructure:"no_sandbox" yaml:"no_sandbox"`
	AutoDownload bool          `mapstructure:"auto_download" yaml:"auto_download"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Options returns the renderer options for c.
func (c ChromeConfig) Options() []docconv.ChromeOption {
	opts := []docconv.ChromeOption{docconv.WithTimeout(c.Timeout)}
	if c.Path != "" {
		opts = append(opts, docconv.WithChromePath(c.Path))
	}
	if c.NoSandbox {
		opts = append(opts, docconv.WithNoSandbox())
	}
	if c.AutoDownload {
		opts = append(opts, docconv.WithAutoDownload())
	}
	return opts
}

// Load builds a Config from v. Defaults are registered on v first so
// every key can also be set through the environment. The result has
// defaults applied and is validated.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// YAML renders cfg as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

var pageSizes = map[string]docconv.PageSize{
	"a3":     docconv.A3,
	"a4":     docconv.A4,
	"a5":     docconv.A5,
	"letter": docconv.Letter,
	"legal":  docconv.Legal,
}

// Resolve converts the page settings to the library type.
func (p PageConfig) Resolve() docconv.PageConfig {
	pc := docconv.DefaultPageConfig()
	if size, ok := pageSizes[p.Size]; ok {
		pc.Size = size
	}
	if p.Orientation == "landscape" {
		pc.Orientation = docconv.Landscape
	}
	if p.MarginCM > 0 {
		pc.Margin = docconv.UniformMargin(p.MarginCM)
	}
	if p.FontSize > 0 {
		pc.FontSize = p.FontSize
	}
	return pc
}

// DispatcherOptions returns the dispatcher options for c. A renderer is
// not included; callers that enable Chrome add [docconv.WithHTMLRenderer].
func (c *Config) DispatcherOptions(logger *zap.Logger) []docconv.Option {
	opts := []docconv.Option{
		docconv.WithLogger(logger),
		docconv.WithPageConfig(c.Page.Resolve()),
		docconv.WithJPEGQuality(c.Image.JPEGQuality),
	}
	if c.PDF.TextMode == "parsed" {
		opts = append(opts, docconv.WithPDFTextExtractor(docconv.ParsedPDFText))
	}
	return opts
}
