// Package export writes dashboard views to files: interactive HTML charts,
// static PNG charts, and an XLSX copy of the table preview.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned when a view has nothing to draw.
var ErrNoData = errors.New("no data to export")

// Format is an export file format.
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatPNG, FormatXLSX}

// ParseFormats validates format names. Names are case-insensitive and
// duplicates are dropped. An empty list is an error.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		switch f {
		case FormatHTML, FormatPNG, FormatXLSX:
		default:
			return nil, fmt.Errorf("unknown format %q (want html, png or xlsx)", name)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no export formats given")
	}
	return out, nil
}

// Options controls chart rendering size.
type Options struct {
	Title  string
	Width  int // pixels
	Height int // pixels
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 512
	}
	return w, h
}
