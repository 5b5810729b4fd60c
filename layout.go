package docconv

import (
	"strings"
	"unicode/utf8"
)

const tabWidth = 4

// LayoutConfig controls how [Paginate] wraps and groups lines.
type LayoutConfig struct {
	// Columns is the maximum number of runes per line. Zero or negative
	// disables wrapping.
	Columns int

	// LinesPerPage is the number of lines grouped into one page. Zero or
	// negative puts every line on a single page.
	LinesPerPage int
}

// TextPage is one page of wrapped lines.
type TextPage struct {
	Lines []string
}

// Paginate wraps text into lines of at most cfg.Columns runes and groups
// them into pages. Line breaks prefer the last space within the limit; a
// word longer than a line is split hard. Tabs are expanded and trailing
// spaces dropped only when wrapping; with wrapping disabled each line is
// kept verbatim. The result always holds at least one page.
func Paginate(text string, cfg LayoutConfig) []TextPage {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if cfg.Columns > 0 {
		text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		lines = append(lines, wrapLine(raw, cfg.Columns)...)
	}

	if cfg.LinesPerPage <= 0 {
		return []TextPage{{Lines: lines}}
	}
	var pages []TextPage
	for len(lines) > cfg.LinesPerPage {
		pages = append(pages, TextPage{Lines: lines[:cfg.LinesPerPage:cfg.LinesPerPage]})
		lines = lines[cfg.LinesPerPage:]
	}
	return append(pages, TextPage{Lines: lines})
}

// wrapLine splits a single line (no newlines) into pieces of at most
// width runes. Spaces at a break point are dropped.
func wrapLine(line string, width int) []string {
	if width <= 0 {
		return []string{line}
	}
	line = strings.TrimRight(line, " ")
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var out []string
	runes := []rune(line)
	for len(runes) > width {
		cut := -1
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		head := ""
		if cut > 0 {
			head = strings.TrimRight(string(runes[:cut]), " ")
		}
		if head == "" {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
			continue
		}
		out = append(out, head)
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
