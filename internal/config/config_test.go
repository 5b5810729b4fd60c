package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	docconv "github.com/porticus-lab/go-docconv"
)

func loadYAML(t *testing.T, doc string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "a4", cfg.Page.Size)
	assert.Equal(t, "portrait", cfg.Page.Orientation)
	assert.Equal(t, 2.0, cfg.Page.MarginCM)
	assert.Equal(t, 10.0, cfg.Page.FontSize)
	assert.Equal(t, 90, cfg.Image.JPEGQuality)
	assert.Equal(t, "heuristic", cfg.PDF.TextMode)
	assert.Equal(t, "localhost:8090", cfg.Server.Addr())
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes())
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "pdf", cfg.Watch.Target)
	assert.Equal(t, 30*time.Second, cfg.Chrome.Timeout)
	assert.False(t, cfg.Chrome.Enabled)
}

func TestLoad_File(t *testing.T) {
	cfg, err := loadYAML(t, `
debug: true
page:
  size: Letter
  orientation: landscape
  font_size: 12
pdf:
  text_mode: parsed
server:
  port: 9000
  cors_origins: ["https://example.com"]
watch:
  input: inbox
  target: jpeg
chrome:
  enabled: true
  timeout: 45s
`)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "letter", cfg.Page.Size)
	assert.Equal(t, 12.0, cfg.Page.FontSize)
	assert.Equal(t, 2.0, cfg.Page.MarginCM)
	assert.Equal(t, "parsed", cfg.PDF.TextMode)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "inbox", cfg.Watch.Input)
	assert.Equal(t, "jpeg", cfg.Watch.Target)
	assert.Equal(t, 45*time.Second, cfg.Chrome.Timeout)
	assert.True(t, cfg.Chrome.Enabled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DOCCONV_SERVER_PORT", "7070")
	t.Setenv("DOCCONV_IMAGE_JPEG_QUALITY", "55")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 55, cfg.Image.JPEGQuality)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"page size", "page:\n  size: b5\n", "Size"},
		{"orientation", "page:\n  orientation: sideways\n", "Orientation"},
		{"jpeg quality", "image:\n  jpeg_quality: 150\n", "JPEGQuality"},
		{"text mode", "pdf:\n  text_mode: ocr\n", "TextMode"},
		{"port", "server:\n  port: 70000\n", "Port"},
		{"watch target", "watch:\n  target: gif\n", "Target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(t, tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyDefaults_KeepsExplicit(t *testing.T) {
	cfg := Config{
		Page:   PageConfig{Size: " A5 ", MarginCM: 1},
		Server: ServerConfig{Port: 1234},
	}
	ApplyDefaults(&cfg)

	assert.Equal(t, "a5", cfg.Page.Size)
	assert.Equal(t, 1.0, cfg.Page.MarginCM)
	assert.Equal(t, 1234, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	require.NoError(t, cfg.Validate())
}

func TestPageConfig_Resolve(t *testing.T) {
	pc := PageConfig{Size: "letter", Orientation: "landscape", MarginCM: 1.5, FontSize: 9}.Resolve()

	assert.Equal(t, docconv.Letter, pc.Size)
	assert.Equal(t, docconv.Landscape, pc.Orientation)
	assert.Equal(t, docconv.UniformMargin(1.5), pc.Margin)
	assert.Equal(t, 9.0, pc.FontSize)
}

func TestConfig_YAML(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	data, err := cfg.YAML()
	require.NoError(t, err)

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
	assert.Contains(t, string(data), "timeout: 30s")
}

func TestConfig_Options(t *testing.T) {
	cfg, err := loadYAML(t, "pdf:\n  text_mode: parsed\nchrome:\n  path: /usr/bin/chromium\n  no_sandbox: true\n")
	require.NoError(t, err)

	assert.Len(t, cfg.DispatcherOptions(zap.NewNop()), 4)
	assert.Len(t, cfg.Chrome.Options(), 3)
}
