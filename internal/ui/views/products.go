package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelf/internal/domain"
)

// renderProductList renders the visible window of the product list
func (r *Renderer) renderProductList(state ViewState) string {
	total := len(state.Products)
	height := state.ViewportHeight
	if height <= 0 || height > total {
		height = total
	}

	start := state.ViewportOffset
	if start > total-height {
		start = total - height
	}
	if start < 0 {
		start = 0
	}
	end := start + height

	width := state.Width - 4
	if width <= 0 {
		width = 76
	}

	lines := make([]string, 0, height+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.renderProductLine(state.Products[i], i, i == state.Cursor, state.ShowPrices, width))
	}
	if end < total {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", total-end)))
	}
	return strings.Join(lines, "\n")
}

// renderProductLine renders one product as "  12. Title  Brand  $9.99  ★4.5"
func (r *Renderer) renderProductLine(p domain.Product, index int, selected, showPrices bool, width int) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}
	number := r.styles.Dim.Render(fmt.Sprintf("%3d.", index+1))

	var meta []string
	if p.Brand != "" {
		meta = append(meta, r.styles.Brand.Render(p.Brand))
	}
	if showPrices {
		meta = append(meta, r.styles.Price.Render(FormatPrice(p.Price)))
		if p.DiscountPercentage >= 1 {
			meta = append(meta, r.styles.Discount.Render(fmt.Sprintf("-%.0f%%", p.DiscountPercentage)))
		}
	}
	if p.Rating > 0 {
		style := r.styles.Rating.Foreground(lipgloss.Color(RatingColor(p.Rating)))
		meta = append(meta, style.Render(fmt.Sprintf("★%.1f", p.Rating)))
	}
	metaText := strings.Join(meta, "  ")

	titleWidth := width - lipgloss.Width(marker) - lipgloss.Width(number) - 1 - lipgloss.Width(metaText) - 2
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := truncate(p.Title, titleWidth)
	title = r.styles.ProductTitle.Render(title + strings.Repeat(" ", max(0, titleWidth-lipgloss.Width(title))))

	line := marker + number + " " + title + "  " + metaText
	if selected {
		return r.styles.Selected.Render(line)
	}
	return line
}

// skeletonWidths gives placeholder rows a ragged, card-like outline
var skeletonWidths = [][3]int{{28, 10, 8}, {36, 8, 6}, {22, 12, 8}, {31, 9, 7}, {26, 11, 6}, {34, 7, 8}}

// renderSkeleton renders placeholder rows shown while a page is loading
func (r *Renderer) renderSkeleton(rows, width int) string {
	if rows <= 0 {
		return ""
	}
	limit := width - 8
	lines := make([]string, rows)
	for i := range lines {
		w := skeletonWidths[i%len(skeletonWidths)]
		line := fmt.Sprintf("      %s  %s  %s",
			strings.Repeat("░", w[0]), strings.Repeat("░", w[1]), strings.Repeat("░", w[2]))
		if limit > 0 {
			line = truncate(line, limit)
		}
		lines[i] = r.styles.Skeleton.Render(line)
	}
	return strings.Join(lines, "\n")
}

// RenderProductDetails formats a product for the detail pager
func (r *Renderer) RenderProductDetails(p domain.Product, showPrices bool) string {
	var b strings.Builder

	b.WriteString(r.styles.DetailHeading.Render(p.Title))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", r.styles.DetailLabel.Render(fmt.Sprintf("%-10s", label)), value))
	}
	field("ID", fmt.Sprintf("%d", p.ID))
	field("SKU", p.SKU)
	field("Brand", p.Brand)
	field("Category", p.Category)
	if showPrices {
		price := FormatPrice(p.Price)
		if p.DiscountPercentage > 0 {
			price = fmt.Sprintf("%s (-%.2f%%)", price, p.DiscountPercentage)
		}
		field("Price", price)
	}
	if p.Rating > 0 {
		field("Rating", fmt.Sprintf("%.2f / 5", p.Rating))
	}
	field("Stock", fmt.Sprintf("%d", p.Stock))
	field("Image", p.Thumbnail)

	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.DetailLabel.Render("  Description"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(72).PaddingLeft(2).Render(p.Description))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatPrice renders a price in dollars
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// truncate shortens s to at most n cells, ending with an ellipsis when cut
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
