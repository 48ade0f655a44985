package views

import (
	"github.com/charmbracelet/x/ansi"
)

// Region identifies the part of the screen a cell belongs to
type Region int

const (
	RegionOutside Region = iota // below the last row
	RegionHeader
	RegionFooter
	RegionRow
	RegionButton
)

func (r Region) String() string {
	switch r {
	case RegionHeader:
		return "header"
	case RegionFooter:
		return "footer"
	case RegionRow:
		return "row"
	case RegionButton:
		return "button"
	default:
		return "outside"
	}
}

// Row controls
const (
	ButtonInfo = "info"
	ButtonOpen = "open"
)

const (
	// HeaderLines is the title line plus the status line
	HeaderLines = 2
	// GutterWidth is the selection marker column
	GutterWidth  = 2
	defaultWidth = 80
)

// Hit is the result of mapping a screen cell onto the list
type Hit struct {
	Region Region
	Row    int // index into the rendered rows, -1 when not on a row
	Button string
}

// ButtonSpan is the half-open column range [Start, End) of a row control
type ButtonSpan struct {
	Name       string
	Start, End int
}

// Layout describes where everything is drawn
type Layout struct {
	Width       int
	Height      int
	Offset      int // first row shown
	Rows        []RowView
	FooterLines int
}

// ListHeight is the number of row lines that fit between header and footer
func (l Layout) ListHeight() int {
	h := l.Height - HeaderLines - l.FooterLines
	if h < 1 {
		return 1
	}
	return h
}

// MaxOffset is the largest useful scroll offset
func (l Layout) MaxOffset() int {
	return max(0, len(l.Rows)-l.ListHeight())
}

// HitTest maps a zero-based screen cell to a region
func (l Layout) HitTest(x, y int) Hit {
	switch {
	case x < 0 || y < 0:
		return Hit{Region: RegionOutside, Row: -1}
	case y < HeaderLines:
		return Hit{Region: RegionHeader, Row: -1}
	case l.Height > 0 && y >= l.Height-l.FooterLines:
		return Hit{Region: RegionFooter, Row: -1}
	}

	line := y - HeaderLines
	idx := l.Offset + line
	if line >= l.ListHeight() || idx >= len(l.Rows) {
		return Hit{Region: RegionOutside, Row: -1}
	}

	hit := Hit{Region: RegionRow, Row: idx}
	for _, span := range ButtonSpans(l.Rows[idx], l.Width) {
		if x >= span.Start && x < span.End {
			hit.Region = RegionButton
			hit.Button = span.Name
		}
	}
	return hit
}

// ButtonSpans places a row's controls flush right, one space apart
func ButtonSpans(row RowView, width int) []ButtonSpan {
	if width <= 0 {
		width = defaultWidth
	}

	names := []string{ButtonInfo}
	if row.IsDir {
		names = append(names, ButtonOpen)
	}

	spans := make([]ButtonSpan, len(names))
	end := width
	for i := len(names) - 1; i >= 0; i-- {
		start := end - ansi.StringWidth(buttonLabel(names[i]))
		spans[i] = ButtonSpan{Name: names[i], Start: start, End: end}
		end = start - 1
	}
	return spans
}

func buttonLabel(name string) string {
	return "[" + name + "]"
}
