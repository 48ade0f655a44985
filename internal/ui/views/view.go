package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ReadyMarker is printed on the status line for the terminal tests
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Root            string
	Rows            []RowView
	Offset          int
	Scanning        bool
	StatusMessage   string
	StatusIsError   bool
	SelectedCount   int
	SelectableCount int
	FilterQuery     string
	FilterInput     string // rendered text input while the filter is edited
	SortLabel       string
	HelpView        string
	ShowReady       bool
}

// FooterLines is the number of lines drawn below the list
func (s ViewState) FooterLines() int {
	if s.FilterInput != "" {
		return 2
	}
	return 1
}

// Layout returns the geometry the state is drawn with
func (s ViewState) Layout() Layout {
	return Layout{
		Width:       s.Width,
		Height:      s.Height,
		Offset:      s.Offset,
		Rows:        s.Rows,
		FooterLines: s.FooterLines(),
	}
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	rowRender *RowRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:    styles,
		rowRender: NewRowRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	layout := state.Layout()

	lines := make([]string, 0, max(state.Height, HeaderLines+1))
	lines = append(lines, r.renderTitle(state, width), r.renderStatus(state))

	listHeight := layout.ListHeight()
	switch {
	case state.Scanning && len(state.Rows) == 0:
		lines = append(lines, r.styles.Dim.Render("Reading directory..."))
		listHeight--
	case len(state.Rows) == 0:
		lines = append(lines, r.styles.Dim.Render("Nothing to show."))
		listHeight--
	}
	for i := state.Offset; i < len(state.Rows) && i < state.Offset+listHeight; i++ {
		lines = append(lines, r.rowRender.RenderRow(state.Rows[i], width))
	}

	// Push the footer to the bottom
	if state.Height > 0 {
		for len(lines) < state.Height-state.FooterLines() {
			lines = append(lines, "")
		}
	}

	if state.FilterInput != "" {
		lines = append(lines, state.FilterInput)
	}
	lines = append(lines, r.styles.Help.Render(state.HelpView))

	return strings.Join(lines, "\n")
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	left := r.styles.Title.Render("multipick") + " " + r.styles.Root.Render(state.Root)

	var indicators []string
	if state.Scanning {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, r.styles.StatusLoading.Render(spinner[frame]+" Scanning"))
	}
	if state.SortLabel != "" {
		indicators = append(indicators, r.styles.Dim.Render("sort: "+state.SortLabel))
	}
	if state.FilterQuery != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if len(indicators) == 0 {
		return left
	}

	right := strings.Join(indicators, "  ")
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return left + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderStatus(state ViewState) string {
	var status string
	switch {
	case state.StatusMessage != "" && state.StatusIsError:
		status = r.styles.StatusError.Render(state.StatusMessage)
	case state.StatusMessage != "":
		status = r.styles.Status.Render(state.StatusMessage)
	default:
		status = r.styles.Status.Render(fmt.Sprintf("%d of %d selected", state.SelectedCount, state.SelectableCount))
	}
	if state.ShowReady {
		status += " " + ReadyMarker
	}
	return status
}
