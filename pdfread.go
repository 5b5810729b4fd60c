package docconv

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor turns PDF bytes into plain text for the txt, html and
// docx targets.
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFTextFunc adapts a function to [PDFTextExtractor].
type PDFTextFunc func(data []byte) (string, error)

// ExtractText calls f(data).
func (f PDFTextFunc) ExtractText(data []byte) (string, error) {
	return f(data)
}

// HeuristicPDFText is the default extractor. It reads the raw byte stream
// as text and drops everything outside printable ASCII. It is lossy and
// never fails; it is not real PDF text extraction.
var HeuristicPDFText PDFTextExtractor = PDFTextFunc(func(data []byte) (string, error) {
	return printableASCII(data), nil
})

// ParsedPDFText parses the document and returns the text of every page,
// one page per paragraph.
var ParsedPDFText PDFTextExtractor = PDFTextFunc(parsedPDFText)

func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func parsedPDFText(data []byte) (text string, err error) {
	r, err := openPDF(data)
	if err != nil {
		return "", err
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()

	var buf bytes.Buffer
	n := r.NumPage()
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		t, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		buf.WriteString(t)
		if i < n {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

// PageCount returns the number of pages in a PDF document.
func PageCount(data []byte) (n int, err error) {
	r, err := openPDF(data)
	if err != nil {
		return 0, &DecodeError{SourceType: "application/pdf", Err: err}
	}
	defer func() {
		if p := recover(); p != nil {
			err = &DecodeError{SourceType: "application/pdf", Err: fmt.Errorf("malformed pdf: %v", p)}
		}
	}()
	return r.NumPage(), nil
}

// PDFPage describes one page of a parsed PDF.
type PDFPage struct {
	Number int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text,omitempty"`
}

// ReadPDFPages parses data and describes the listed pages (1-based, in the
// given order). A nil list selects every page. Page text is extracted only
// when withText is set. Pages outside the document are an error.
func ReadPDFPages(data []byte, pages []int, withText bool) (out []PDFPage, err error) {
	r, err := openPDF(data)
	if err != nil {
		return nil, &DecodeError{SourceType: "application/pdf", Err: err}
	}
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, &DecodeError{SourceType: "application/pdf", Err: fmt.Errorf("malformed pdf: %v", p)}
		}
	}()

	n := r.NumPage()
	if pages == nil {
		pages = make([]int, n)
		for i := range pages {
			pages[i] = i + 1
		}
	}
	for _, num := range pages {
		if num < 1 || num > n {
			return nil, fmt.Errorf("docconv: page %d out of bounds (1-%d)", num, n)
		}
		page := r.Page(num)
		w, h := mediaBox(page.V)
		info := PDFPage{Number: num, Width: w, Height: h}
		if withText && !page.V.IsNull() {
			if info.Text, err = page.GetPlainText(nil); err != nil {
				return nil, &DecodeError{SourceType: "application/pdf", Err: fmt.Errorf("page %d: %w", num, err)}
			}
		}
		out = append(out, info)
	}
	return out, nil
}

// mediaBox returns the page size in points. MediaBox may be inherited
// from any ancestor in the page tree.
func mediaBox(v pdf.Value) (width, height float64) {
	for ; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return box.Index(2).Float64() - box.Index(0).Float64(),
				box.Index(3).Float64() - box.Index(1).Float64()
		}
	}
	return 0, 0
}
