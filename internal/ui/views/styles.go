package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	SearchLabel    lipgloss.Style
	SearchQuery    lipgloss.Style
	Main           lipgloss.Style
	Scroll         lipgloss.Style
	Selected       lipgloss.Style
	ProductTitle   lipgloss.Style
	Brand          lipgloss.Style
	Price          lipgloss.Style
	Discount       lipgloss.Style
	Rating         lipgloss.Style
	Skeleton       lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusMessage  lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Pagination     lipgloss.Style
	DetailHeading  lipgloss.Style
	DetailLabel    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:          lipgloss.NewStyle().Faint(true),
		SearchLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		SearchQuery:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Scroll:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		ProductTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Brand:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // blue
		Price:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Discount:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Rating:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Skeleton:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
		StatusLoading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // gray
		StatusMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("63")).
			Padding(0, 2).
			Bold(true),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("237")).
			Padding(0, 2),
		Pagination:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DetailHeading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		DetailLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// RatingColor returns the color for a 0-5 star rating
func RatingColor(rating float64) string {
	switch {
	case rating >= 4.5:
		return "78" // green
	case rating >= 3.5:
		return "220" // yellow
	default:
		return "203" // red
	}
}
