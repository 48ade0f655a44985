package ui

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"github.com/noborus/ov/oviewer"

	"multipick/internal/selection"
)

// HelpOps shows help outside of the Bubble Tea screen
type HelpOps struct {
	program *tea.Program
}

// NewHelpOps creates a new help handler
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// helpMarkdown describes the mouse gestures and the bound keys
func helpMarkdown(keys keyMap, configured map[string]string, multiKey selection.Key) string {
	var b strings.Builder

	b.WriteString("# multipick\n\n")
	b.WriteString("Pick entries with the mouse, then press **enter** to print their paths.\n\n")

	b.WriteString("## Mouse\n\n")
	b.WriteString("| Gesture | Effect |\n|---|---|\n")
	b.WriteString("| click | select only this entry |\n")
	fmt.Fprintf(&b, "| %s+click | add or remove this entry |\n", modifierName(multiKey))
	b.WriteString("| shift+click | toggle everything from the last clicked entry to this one |\n")
	b.WriteString("| click outside the list | clear the selection |\n")
	b.WriteString("| `[info]` | show size, mode and modification time |\n")
	b.WriteString("| `[open]` | list a directory |\n")
	b.WriteString("| wheel | scroll |\n\n")

	b.WriteString("## Keys\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, binding := range keys.all() {
		h := binding.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}

	names := make([]string, 0, len(configured))
	for k := range configured {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		fmt.Fprintf(&b, "| `%s` | %s |\n", k, configured[k])
	}

	b.WriteString("\nTerminals report the macOS Option key as alt, which counts as meta.\n")
	return b.String()
}

func modifierName(k selection.Key) string {
	if k == selection.KeyMeta {
		return "alt"
	}
	return "ctrl"
}

// renderHelp turns the help markdown into styled terminal text
func renderHelp(md string, width int) string {
	if width < 20 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(helpStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func helpStyle() string {
	switch strings.ToLower(os.Getenv("MULTIPICK_THEME")) {
	case "light":
		return styles.LightStyle
	case "dark":
		return styles.DarkStyle
	}
	if termenv.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// ShowHelpInPager renders the help markdown and shows it using ov pager.
// The theme probe queries the terminal, so rendering waits until it is
// released.
func (h *HelpOps) ShowHelpInPager(markdown string, width int) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(renderHelp(markdown, width)))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}

// configureVimKeyBindings adds j/k style movement on top of ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["exit"] = []string{"Escape", "q"}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+n", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+p", "k"}
	config.Keybind["top"] = []string{"Home", "g"}
	config.Keybind["bottom"] = []string{"End", "G"}
	config.Keybind["page_down"] = []string{"PageDown", "ctrl+v", "ctrl+f", " "}
	config.Keybind["page_up"] = []string{"PageUp", "ctrl+b"}
}
