package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RowView is what the renderer needs to draw one directory entry
type RowView struct {
	Name       string
	IsDir      bool
	Selected   bool
	Selectable bool
}

// RowRenderer handles rendering of list rows
type RowRenderer struct {
	styles *Styles
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles) *RowRenderer {
	return &RowRenderer{styles: styles}
}

// RenderRow draws the marker gutter, the name and the row controls so the
// controls land exactly on the columns ButtonSpans reports
func (r *RowRenderer) RenderRow(row RowView, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	spans := ButtonSpans(row, width)
	labelWidth := max(0, spans[0].Start-GutterWidth-1)

	marker := strings.Repeat(" ", GutterWidth)
	if row.Selected {
		marker = r.styles.Marker.Render("●") + " "
	}

	label := ansi.Truncate(row.Name, labelWidth, "…")
	label += strings.Repeat(" ", max(0, labelWidth-ansi.StringWidth(label)))

	nameStyle := r.styles.Item
	switch {
	case !row.Selectable:
		nameStyle = r.styles.Unselectable
	case row.IsDir:
		nameStyle = r.styles.Dir
	}
	if row.Selected {
		nameStyle = nameStyle.Inherit(r.styles.SelectionBg)
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(nameStyle.Render(label))
	for _, span := range spans {
		b.WriteString(" ")
		b.WriteString(r.styles.Button.Render(buttonLabel(span.Name)))
	}
	return b.String()
}
