package docconv

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

const layoutFont = "Courier"

// newPDF creates an empty document with the page geometry of pg.
func newPDF(pg PageConfig, title string) *fpdf.Fpdf {
	orientation := "P"
	if pg.Orientation == Landscape {
		orientation = "L"
	}
	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size: fpdf.SizeType{
			Wd: cmToPoints(pg.Size.Width),
			Ht: cmToPoints(pg.Size.Height),
		},
	})
	f.SetMargins(cmToPoints(pg.Margin.Left), cmToPoints(pg.Margin.Top), cmToPoints(pg.Margin.Right))
	f.SetAutoPageBreak(false, 0)
	f.SetCreator("docconv", true)
	if title != "" {
		f.SetTitle(title, true)
	}
	return f
}

// toWinAnsi transliterates s to the Windows-1252 bytes understood by the
// PDF core fonts. Runes without a mapping become '?'.
func toWinAnsi(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

// writeTextPages draws one PDF page per TextPage in the monospace layout font.
func writeTextPages(f *fpdf.Fpdf, pages []TextPage, pg PageConfig) {
	f.SetFont(layoutFont, "", pg.FontSize)
	leading := pg.FontSize * lineLeading
	left := cmToPoints(pg.Margin.Left)
	top := cmToPoints(pg.Margin.Top)

	for _, p := range pages {
		f.AddPage()
		for i, line := range p.Lines {
			if line == "" {
				continue
			}
			f.Text(left, top+pg.FontSize+float64(i)*leading, toWinAnsi(line))
		}
	}
}

// outputPDF serialises f, mapping any failure to an EncodeError.
func outputPDF(f *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, &EncodeError{Target: FormatPDF, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodeError{Target: FormatPDF, Err: errEmptyOutput}
	}
	return buf.Bytes(), nil
}

// textToPDF lays text out as wrapped lines over as many pages as needed.
func textToPDF(text, title string, cfg *PageConfig) ([]byte, error) {
	pg := cfg.resolved()
	f := newPDF(pg, title)
	writeTextPages(f, Paginate(text, cfg.layout()), pg)
	return outputPDF(f)
}

// imageToPDF embeds img as a single page, stretched over the whole page.
// JPEG sources are embedded as-is; everything else is re-encoded to PNG.
func imageToPDF(data []byte, format string, img image.Image, title string, cfg *PageConfig) ([]byte, error) {
	pg := cfg.resolved()
	f := newPDF(pg, title)

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	src := data
	if format != "jpeg" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, &EncodeError{Target: FormatPDF, Err: fmt.Errorf("rasterizing image: %w", err)}
		}
		opts.ImageType = "PNG"
		src = buf.Bytes()
	}

	f.RegisterImageOptionsReader("page", opts, bytes.NewReader(src))
	f.AddPage()
	w, h := f.GetPageSize()
	f.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")
	return outputPDF(f)
}
