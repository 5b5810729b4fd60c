package docconv

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

var disableConfigDir sync.Once

// Merge concatenates the pages of docs, in order, into one PDF named
// "merged.pdf". Every document must be declared application/pdf.
func (d *Dispatcher) Merge(ctx context.Context, docs []Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNoInput
	}
	for _, doc := range docs {
		if src := newSource(doc); src.kind != kindPDF {
			return nil, &UnsupportedSourceError{Target: FormatPDF, SourceType: src.mediaType}
		}
	}
	if len(docs) == 1 {
		return newResult(docs[0].Data, FormatPDF, "merged"), nil
	}

	// pdfcpu otherwise creates a configuration directory under $HOME.
	disableConfigDir.Do(api.DisableConfigDir)

	rsc := make([]io.ReadSeeker, len(docs))
	for i, doc := range docs {
		rsc[i] = bytes.NewReader(doc.Data)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.MergeRaw(rsc, &buf, false, conf); err != nil {
		return nil, &DecodeError{SourceType: "application/pdf", Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodeError{Target: FormatPDF, Err: errEmptyOutput}
	}
	d.cfg.logger.Debug("merged pdfs", zap.Int("inputs", len(docs)), zap.Int("bytes", buf.Len()))
	return newResult(buf.Bytes(), FormatPDF, "merged"), nil
}

// GenerateTaskList produces a PDF named "task.pdf" with a "Task List"
// heading followed by task.
func (d *Dispatcher) GenerateTaskList(ctx context.Context, task string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := textToPDF("Task List\n\n"+task, "Task List", &d.cfg.page)
	if err != nil {
		return nil, err
	}
	return newResult(out, FormatPDF, "task"), nil
}

// MergePDFs merges docs using a Dispatcher with default options.
func MergePDFs(ctx context.Context, docs []Document) (*Result, error) {
	return defaultDispatcher.Merge(ctx, docs)
}

// GenerateTaskList creates a task list PDF using a Dispatcher with default options.
func GenerateTaskList(ctx context.Context, task string) (*Result, error) {
	return defaultDispatcher.GenerateTaskList(ctx, task)
}
