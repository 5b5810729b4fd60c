package docconv

import "go.uber.org/zap"

// dispatcherConfig holds internal configuration for a Dispatcher.
type dispatcherConfig struct {
	logger      *zap.Logger
	page        PageConfig
	jpegQuality int
	pdfText     PDFTextExtractor
	renderer    HTMLRenderer
}

func defaultConfig() dispatcherConfig {
	return dispatcherConfig{
		logger:      zap.NewNop(),
		page:        DefaultPageConfig(),
		jpegQuality: DefaultJPEGQuality,
		pdfText:     HeuristicPDFText,
	}
}

// Option configures a [Dispatcher].
type Option func(*dispatcherConfig)

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *dispatcherConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPageConfig sets the page geometry of generated PDFs.
// Zero-value fields keep their defaults.
func WithPageConfig(pg PageConfig) Option {
	return func(c *dispatcherConfig) {
		c.page = pg.resolved()
	}
}

// WithJPEGQuality sets the JPEG quality (1-100) for image re-encoding.
// Out-of-range values are clamped. Defaults to [DefaultJPEGQuality].
func WithJPEGQuality(q int) Option {
	return func(c *dispatcherConfig) {
		c.jpegQuality = min(max(q, 1), 100)
	}
}

// WithPDFTextExtractor replaces the PDF text extraction used for the txt,
// html and docx targets. Defaults to [HeuristicPDFText].
func WithPDFTextExtractor(e PDFTextExtractor) Option {
	return func(c *dispatcherConfig) {
		if e != nil {
			c.pdfText = e
		}
	}
}

// WithHTMLRenderer makes html→pdf render the markup with r instead of
// laying out the tag-stripped text.
func WithHTMLRenderer(r HTMLRenderer) Option {
	return func(c *dispatcherConfig) {
		c.renderer = r
	}
}
