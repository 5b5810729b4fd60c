package docconv

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"
)

// tagPattern matches any <...> sequence. This is deliberately literal: it
// does not understand comments, scripts or attributes containing '>'.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags removes markup tags and unescapes character references.
func stripTags(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

// printableASCII keeps printable ASCII plus newline, carriage return and
// tab. Everything else is dropped.
func printableASCII(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if (c >= 0x20 && c <= 0x7e) || c == '\n' || c == '\r' || c == '\t' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Pages}}<pre class="page">{{.}}</pre>
{{end}}</body>
</html>
`))

// renderHTML wraps text into a minimal HTML document titled title.
func renderHTML(title, text string) ([]byte, error) {
	pages := Paginate(text, LayoutConfig{})
	data := struct {
		Title string
		Pages []string
	}{Title: title}
	for _, p := range pages {
		data.Pages = append(data.Pages, strings.Join(p.Lines, "\n"))
	}

	var buf bytes.Buffer
	if err := htmlPage.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
