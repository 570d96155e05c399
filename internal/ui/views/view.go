package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelf/internal/browser"
	"shelf/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Query        string
	SearchActive bool
	SearchPrompt string
	SearchInput  string // rendered text input while searching

	Products        []domain.Product
	Status          browser.Status
	Err             string
	Page            int
	TotalPages      int
	CanLoadMore     bool
	LoadMoreEnabled bool

	Cursor         int
	ViewportOffset int
	ViewportHeight int

	Spinner       string
	SkeletonRows  int
	ShowPrices    bool
	StatusMessage string
	Help          string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")
	content.WriteString(r.renderSearchLine(state))
	content.WriteString("\n\n")

	// Products stay visible while a later page loads or fails
	if len(state.Products) > 0 {
		content.WriteString(r.renderProductList(state))
		content.WriteString("\n")
	}

	switch state.Status {
	case browser.StatusPending:
		content.WriteString(r.renderSkeleton(state.SkeletonRows, state.Width))
		content.WriteString("\n")
	case browser.StatusRejected:
		content.WriteString(r.styles.StatusError.Render("✗ " + state.Err))
		content.WriteString("\n")
	case browser.StatusIdle:
		content.WriteString(r.styles.Dim.Render("Starting..."))
		content.WriteString("\n")
	}

	if state.CanLoadMore {
		content.WriteString("\n")
		content.WriteString(r.renderLoadMore(state))
		content.WriteString("\n")
	}

	if footer := r.renderPagination(state); footer != "" {
		content.WriteString("\n")
		content.WriteString(footer)
		content.WriteString("\n")
	}

	if state.StatusMessage != "" {
		content.WriteString(r.styles.StatusMessage.Render(state.StatusMessage))
		content.WriteString("\n")
	}

	// Push the help bar to the bottom of the screen
	if state.Help != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2 // container padding
		helpLines := lipgloss.Height(state.Help)
		if padding := availableLines - currentLines - helpLines; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString(state.Help)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("Products")
	if state.Status != browser.StatusPending {
		return logo
	}

	indicator := r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading", state.Spinner))
	if state.Page > 1 {
		indicator = r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading page %d", state.Spinner, state.Page))
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	available := termWidth - 4 // main container padding
	padding := available - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	prompt := state.SearchPrompt
	if prompt == "" {
		prompt = "Search: "
	}
	label := r.styles.SearchLabel.Render(prompt)

	if state.SearchActive {
		return label + state.SearchInput
	}
	if state.Query == "" {
		return label + r.styles.Dim.Render("all products (press / to search)")
	}
	return label + r.styles.SearchQuery.Render(state.Query)
}

func (r *Renderer) renderLoadMore(state ViewState) string {
	if !state.LoadMoreEnabled {
		return r.styles.ButtonDisabled.Render("Loading...")
	}
	return r.styles.Button.Render("Load More")
}

func (r *Renderer) renderPagination(state ViewState) string {
	if len(state.Products) == 0 || state.TotalPages == 0 {
		return ""
	}
	noun := "products"
	if len(state.Products) == 1 {
		noun = "product"
	}
	return r.styles.Pagination.Render(fmt.Sprintf("page %d of %d · %d %s loaded",
		state.Page, state.TotalPages, len(state.Products), noun))
}
