package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultPageSize        = "a4"
	DefaultOrientation     = "portrait"
	DefaultMarginCM        = 2.0
	DefaultFontSize        = 10.0
	DefaultJPEGQuality     = 90
	DefaultPDFTextMode     = "heuristic"
	DefaultHost            = "localhost"
	DefaultPort            = 8090
	DefaultMaxUploadMB     = 32
	DefaultWatchTarget     = "pdf"
	DefaultChromeTimeout   = 30 * time.Second
	DefaultWatchOutputDir  = "converted"
	DefaultCORSAllowOrigin = "*"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("page.size", DefaultPageSize)
	v.SetDefault("page.orientation", DefaultOrientation)
	v.SetDefault("page.margin_cm", DefaultMarginCM)
	v.SetDefault("page.font_size", DefaultFontSize)
	v.SetDefault("image.jpeg_quality", DefaultJPEGQuality)
	v.SetDefault("pdf.text_mode", DefaultPDFTextMode)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.max_upload_mb", DefaultMaxUploadMB)
	v.SetDefault("server.cors_origins", []string{DefaultCORSAllowOrigin})
	v.SetDefault("watch.input", "")
	v.SetDefault("watch.output", DefaultWatchOutputDir)
	v.SetDefault("watch.target", DefaultWatchTarget)
	v.SetDefault("chrome.enabled", false)
	v.SetDefault("chrome.path", "")
	v.SetDefault("chrome.no_sandbox", false)
	v.SetDefault("chrome.auto_download", false)
	v.SetDefault("chrome.timeout", DefaultChromeTimeout)
}

// ApplyDefaults fills zero values in cfg and normalises enum values to
// lower case.
func ApplyDefaults(cfg *Config) {
	cfg.Page.Size = strings.ToLower(strings.TrimSpace(cfg.Page.Size))
	cfg.Page.Orientation = strings.ToLower(strings.TrimSpace(cfg.Page.Orientation))
	cfg.PDF.TextMode = strings.ToLower(strings.TrimSpace(cfg.PDF.TextMode))
	cfg.Watch.Target = strings.ToLower(strings.TrimSpace(cfg.Watch.Target))

	if cfg.Page.Size == "" {
		cfg.Page.Size = DefaultPageSize
	}
	if cfg.Page.Orientation == "" {
		cfg.Page.Orientation = DefaultOrientation
	}
	if cfg.Page.MarginCM == 0 {
		cfg.Page.MarginCM = DefaultMarginCM
	}
	if cfg.Page.FontSize == 0 {
		cfg.Page.FontSize = DefaultFontSize
	}
	if cfg.Image.JPEGQuality == 0 {
		cfg.Image.JPEGQuality = DefaultJPEGQuality
	}
	if cfg.PDF.TextMode == "" {
		cfg.PDF.TextMode = DefaultPDFTextMode
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = DefaultMaxUploadMB
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{DefaultCORSAllowOrigin}
	}
	if cfg.Watch.Output == "" {
		cfg.Watch.Output = DefaultWatchOutputDir
	}
	if cfg.Watch.Target == "" {
		cfg.Watch.Target = DefaultWatchTarget
	}
	if cfg.Chrome.Timeout == 0 {
		cfg.Chrome.Timeout = DefaultChromeTimeout
	}
}
