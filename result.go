package docconv

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
)

// Result holds the output of a conversion together with its media type and
// a suggested file name. Delivering or storing it is up to the caller.
//
// It is safe to call its methods multiple times; the underlying data is
// never modified.
type Result struct {
	data      []byte
	mediaType string
	fileName  string
}

func newResult(data []byte, target Format, fileName string) *Result {
	return &Result{
		data:      data,
		mediaType: target.MediaType(),
		fileName:  suggestedName(fileName, target),
	}
}

// Bytes returns the raw output content.
func (r *Result) Bytes() []byte {
	return r.data
}

// MediaType returns the canonical media type of the output.
func (r *Result) MediaType() string {
	return r.mediaType
}

// FileName returns the suggested file name for the output, e.g. "note.html".
func (r *Result) FileName() string {
	return r.fileName
}

// Base64 returns the output encoded as a standard base64 string (RFC 4648).
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the output content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full output to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the output to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Len returns the size of the output in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
