package docconv

import (
	"fmt"
	"strings"
)

// Format identifies a conversion target.
type Format int

// Supported targets. The zero value is not a valid format.
const (
	// FormatPDF lays text and images out as PDF pages. HTML is printed by
	// the configured renderer when one is set.
	FormatPDF Format = iota + 1
	// FormatTXT produces plain text.
	FormatTXT
	// FormatHTML wraps text in a minimal HTML page.
	FormatHTML
	// FormatDOCX is a stub: source bytes are relabelled, not converted.
	FormatDOCX
	// FormatPNG re-encodes raster images as PNG.
	FormatPNG
	// FormatJPG re-encodes raster images as JPEG at the configured quality.
	FormatJPG
	// FormatZIP is a stub: source bytes are relabelled, not archived.
	FormatZIP
)

// FormatInfo describes a target format for display purposes.
type FormatInfo struct {
	Format      Format `json:"-"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	MediaType   string `json:"media_type"`
	Extension   string `json:"extension"`
	// Stub is true when conversion to this format only relabels bytes.
	Stub bool `json:"stub"`
}

// catalog is listed in the order the formats are offered to users.
var catalog = []FormatInfo{
	{FormatPDF, "pdf", "PDF Document", "application/pdf", ".pdf", false},
	{FormatDOCX, "docx", "Word Document (stub)", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx", true},
	{FormatTXT, "txt", "Plain Text", "text/plain", ".txt", false},
	{FormatHTML, "html", "HTML Page", "text/html", ".html", false},
	{FormatPNG, "png", "PNG Image", "image/png", ".png", false},
	{FormatJPG, "jpg", "JPEG Image", "image/jpeg", ".jpg", false},
	{FormatZIP, "zip", "ZIP Archive (stub)", "application/zip", ".zip", true},
}

var formatAliases = map[string]Format{
	"jpeg": FormatJPG,
	"text": FormatTXT,
	"htm":  FormatHTML,
}

// Catalog returns the supported target formats. The returned slice is a copy.
func Catalog() []FormatInfo {
	out := make([]FormatInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ParseFormat resolves a format name such as "pdf" or ".jpeg".
func ParseFormat(name string) (Format, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	for _, fi := range catalog {
		if fi.Name == key {
			return fi.Format, nil
		}
	}
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f Format) info() (FormatInfo, bool) {
	for _, fi := range catalog {
		if fi.Format == f {
			return fi, true
		}
	}
	return FormatInfo{}, false
}

// String returns the short lowercase name ("pdf", "jpg", ...).
func (f Format) String() string {
	if fi, ok := f.info(); ok {
		return fi.Name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// MediaType returns the canonical media type produced for f.
func (f Format) MediaType() string {
	fi, _ := f.info()
	return fi.MediaType
}

// Extension returns the file extension for f, including the leading dot.
func (f Format) Extension() string {
	fi, _ := f.info()
	return fi.Extension
}

// Valid reports whether f is one of the catalog formats.
func (f Format) Valid() bool {
	_, ok := f.info()
	return ok
}
