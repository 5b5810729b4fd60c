package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePageRange converts a page range to 1-based page numbers, in the
// order given and without repeats. Supported forms: "" (all), "3",
// "1-5" and comma-separated lists of either.
func parsePageRange(ranges string, total int) ([]int, error) {
	if strings.TrimSpace(ranges) == "" {
		return nil, nil
	}

	var pages []int
	seen := make(map[int]bool)
	add := func(p int) {
		if !seen[p] {
			pages = append(pages, p)
			seen[p] = true
		}
	}

	for _, part := range strings.Split(ranges, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", lo)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", hi)
			}
		}
		if start < 1 || end > total || start > end {
			if isRange {
				return nil, fmt.Errorf("page range %d-%d out of bounds (1-%d)", start, end, total)
			}
			return nil, fmt.Errorf("page %d out of bounds (1-%d)", start, total)
		}
		for p := start; p <= end; p++ {
			add(p)
		}
	}
	return pages, nil
}
