package docconv

import (
	"mime"
	"path"
	"strings"
)

// Document is an input to a conversion: the raw bytes, the media type the
// caller associates with them, and the original file name.
//
// The declared media type is trusted as given; the bytes are never sniffed.
type Document struct {
	Data      []byte
	MediaType string
	FileName  string
}

// sourceKind classifies a declared media type for dispatch.
type sourceKind int

const (
	kindOther sourceKind = iota
	kindPDF
	kindImage
	kindHTML
	kindText
	kindDocument
)

var documentTypes = map[string]bool{
	"application/msword":                      true,
	"application/rtf":                         true,
	"text/rtf":                                true,
	"application/vnd.oasis.opendocument.text": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// normalizeMediaType lowercases t and drops any parameters.
func normalizeMediaType(t string) string {
	t = strings.TrimSpace(t)
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}

func classify(mediaType string) sourceKind {
	switch {
	case mediaType == "application/pdf":
		return kindPDF
	case strings.HasPrefix(mediaType, "image/"):
		return kindImage
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return kindHTML
	case documentTypes[mediaType] || strings.Contains(mediaType, "document"):
		return kindDocument
	case strings.HasPrefix(mediaType, "text/"):
		return kindText
	}
	return kindOther
}

// stem returns the base file name truncated at its first ".".
// An empty result falls back to "converted".
func stem(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return "converted"
	}
	return base
}

// suggestedName builds the output file name for target.
func suggestedName(fileName string, target Format) string {
	return stem(fileName) + target.Extension()
}
