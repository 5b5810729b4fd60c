// Package sniff guesses the media type of files whose type is not declared.
package sniff

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var extensionTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/plain",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".odt":  "application/vnd.oasis.opendocument.text",
	".rtf":  "application/rtf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".json": "application/json",
}

// MediaType sniffs data with mimetype. When the content alone is
// inconclusive (plain text, a bare zip container, unknown binary) the
// extension of name decides, if it is known.
func MediaType(name string, data []byte) string {
	mt := mimetype.Detect(data)
	if !mt.Is("application/octet-stream") && !mt.Is("text/plain") && !mt.Is("application/zip") {
		return mt.String()
	}
	if byExt, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return byExt
	}
	return mt.String()
}
