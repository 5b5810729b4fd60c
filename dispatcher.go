package docconv

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// HTMLRenderer renders an HTML document to PDF bytes. [ChromeRenderer]
// is the bundled implementation.
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, html string, pg *PageConfig) ([]byte, error)
}

// Dispatcher converts documents between formats.
//
// Conversion is selected purely from the declared media type of the input
// and the requested target. A Dispatcher holds no mutable state after
// construction and is safe for concurrent use.
type Dispatcher struct {
	cfg dispatcherConfig
}

// NewDispatcher creates a Dispatcher with the given options.
func NewDispatcher(opts ...Option) *Dispatcher {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Dispatcher{cfg: cfg}
}

// source is a Document with its media type normalised and classified.
type source struct {
	Document
	mediaType string
	kind      sourceKind
}

func newSource(doc Document) source {
	mt := normalizeMediaType(doc.MediaType)
	return source{Document: doc, mediaType: mt, kind: classify(mt)}
}

func (s source) title() string {
	return stem(s.FileName)
}

// routine produces the output bytes for one target format.
type routine func(d *Dispatcher, ctx context.Context, src source, target Format) ([]byte, error)

var routines = map[Format]routine{
	FormatPDF:  toPDF,
	FormatTXT:  toTXT,
	FormatHTML: toHTML,
	FormatDOCX: docxStub,
	FormatZIP:  zipStub,
	FormatPNG:  toRaster,
	FormatJPG:  toRaster,
}

// Convert converts doc to the target format.
//
// Every unsupported (source, target) pair fails with a typed error; see
// [UnsupportedSourceError], [NotAnImageError], [DecodeError] and
// [EncodeError]. Failures are never retried and never return partial
// output. ctx is checked before work starts and is passed on to a
// configured [HTMLRenderer]; the built-in routines run to completion.
func (d *Dispatcher) Convert(ctx context.Context, doc Document, target Format) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn, ok := routines[target]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, target)
	}

	src := newSource(doc)
	log := d.cfg.logger.With(
		zap.String("file", doc.FileName),
		zap.String("source", src.mediaType),
		zap.Stringer("target", target),
	)
	log.Debug("converting", zap.Int("bytes", len(doc.Data)))

	out, err := fn(d, ctx, src, target)
	if err != nil {
		log.Debug("conversion failed", zap.Error(err))
		return nil, err
	}
	log.Debug("converted", zap.Int("output_bytes", len(out)))
	return newResult(out, target, doc.FileName), nil
}

// textOf extracts the text carried by src. Sources without text fail with
// an UnsupportedSourceError for target.
func (d *Dispatcher) textOf(src source, target Format) (string, error) {
	switch src.kind {
	case kindText:
		return plainText(src.Data), nil
	case kindHTML:
		return stripTags(plainText(src.Data)), nil
	case kindPDF:
		text, err := d.cfg.pdfText.ExtractText(src.Data)
		if err != nil {
			return "", &DecodeError{SourceType: src.mediaType, Err: err}
		}
		return text, nil
	case kindDocument:
		text, err := documentText(src.mediaType, src.Data)
		if err != nil {
			return "", &DecodeError{SourceType: src.mediaType, Err: err}
		}
		return text, nil
	}
	return "", &UnsupportedSourceError{Target: target, SourceType: src.mediaType}
}

func toPDF(d *Dispatcher, ctx context.Context, src source, target Format) ([]byte, error) {
	switch src.kind {
	case kindPDF:
		return src.Data, nil
	case kindImage:
		img, format, err := decodeImage(src.mediaType, src.Data)
		if err != nil {
			return nil, err
		}
		return imageToPDF(src.Data, format, img, src.title(), &d.cfg.page)
	case kindHTML:
		if d.cfg.renderer != nil {
			out, err := d.cfg.renderer.RenderHTML(ctx, plainText(src.Data), &d.cfg.page)
			if err != nil {
				return nil, &EncodeError{Target: target, Err: err}
			}
			return out, nil
		}
		fallthrough
	case kindText, kindDocument:
		text, err := d.textOf(src, target)
		if err != nil {
			return nil, err
		}
		return textToPDF(text, src.title(), &d.cfg.page)
	}
	return nil, &UnsupportedSourceError{Target: target, SourceType: src.mediaType}
}

func toTXT(d *Dispatcher, _ context.Context, src source, target Format) ([]byte, error) {
	if src.kind == kindText {
		return src.Data, nil
	}
	text, err := d.textOf(src, target)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func toHTML(d *Dispatcher, _ context.Context, src source, target Format) ([]byte, error) {
	if src.kind == kindHTML {
		return src.Data, nil
	}
	text, err := d.textOf(src, target)
	if err != nil {
		return nil, err
	}
	out, err := renderHTML(src.title(), text)
	if err != nil {
		return nil, &EncodeError{Target: target, Err: err}
	}
	return out, nil
}

func toRaster(d *Dispatcher, _ context.Context, src source, target Format) ([]byte, error) {
	if !strings.HasPrefix(src.mediaType, "image/") {
		return nil, &NotAnImageError{Target: target, SourceType: src.mediaType}
	}
	img, _, err := decodeImage(src.mediaType, src.Data)
	if err != nil {
		return nil, err
	}
	return encodeImage(canvas(img), target, d.cfg.jpegQuality)
}

// --- Package-level convenience functions ---

var defaultDispatcher = NewDispatcher()

// Convert converts doc to target using a Dispatcher with default options.
func Convert(ctx context.Context, doc Document, target Format) (*Result, error) {
	return defaultDispatcher.Convert(ctx, doc, target)
}
