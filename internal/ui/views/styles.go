package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Root          lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Help          lipgloss.Style
	Item          lipgloss.Style
	Dir           lipgloss.Style
	Unselectable  lipgloss.Style
	Marker        lipgloss.Style
	Button        lipgloss.Style
	SelectionBg   lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Root:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:          lipgloss.NewStyle().Faint(true),
		Item:          lipgloss.NewStyle(),
		Dir:           lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Unselectable:  lipgloss.NewStyle().Faint(true),
		Marker:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Button:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}

// ConfigureColorProfile picks the lipgloss color profile from the
// environment so NO_COLOR and CLICOLOR_FORCE are honored
func ConfigureColorProfile() termenv.Profile {
	profile := termenv.EnvColorProfile()
	lipgloss.SetColorProfile(profile)
	return profile
}
