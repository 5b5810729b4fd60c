package docconv

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lu4p/cat"
	"github.com/xuri/excelize/v2"
)

const (
	docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	odtMediaType  = "application/vnd.oasis.opendocument.text"

	docxDocumentXMLPath = "word/document.xml"
	contentTypesPath    = "[Content_Types].xml"
	docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

// wtTag matches <w:t>text</w:t> runs regardless of their attributes.
var wtTag = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)

// mainPartName finds the PartName of the main document Override in
// [Content_Types].xml, with the attributes in either order.
var mainPartName = []*regexp.Regexp{
	regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`),
	regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`),
}

// wpEnd marks paragraph ends inside word/document.xml.
var wpEnd = regexp.MustCompile(`</w:p>`)

// plainText returns data as a string with invalid UTF-8 replaced.
func plainText(data []byte) string {
	return strings.ToValidUTF8(string(data), "\ufffd")
}

// documentText extracts readable text from office-style documents. Formats
// without a dedicated reader fall back to the raw bytes with tags stripped.
func documentText(mediaType string, data []byte) (string, error) {
	switch mediaType {
	case docxMediaType:
		return docxText(data)
	case xlsxMediaType:
		return xlsxText(data)
	case odtMediaType, "application/rtf", "text/rtf":
		text, err := cat.FromBytes(data)
		if err != nil {
			return "", err
		}
		return text, nil
	}
	return stripTags(plainText(data)), nil
}

// docxText reads the <w:t> runs of the main document part, one line per
// paragraph. The part is located through [Content_Types].xml, falling back
// to word/document.xml.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a zip: %w", err)
	}

	docPath := docxDocumentXMLPath
	if types, err := readZipFile(zr, contentTypesPath); err == nil {
		for _, re := range mainPartName {
			if m := re.FindSubmatch(types); m != nil {
				docPath = strings.TrimPrefix(string(m[1]), "/")
				break
			}
		}
	}

	xml, err := readZipFile(zr, docPath)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, para := range wpEnd.Split(string(xml), -1) {
		runs := wtTag.FindAllStringSubmatch(para, -1)
		if len(runs) == 0 {
			continue
		}
		for _, r := range runs {
			b.WriteString(r[1])
		}
		b.WriteByte('\n')
	}
	return stripTags(strings.TrimRight(b.String(), "\n")), nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}

// xlsxText renders every sheet as tab-separated rows.
func xlsxText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("rows of sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String()), nil
}
