package input

import (
	"shelf/internal/browser"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State  browser.State
	Cursor int
}

// CurrentIndex returns the highlighted product index
func (c *ModelContext) CurrentIndex() int {
	return c.Cursor
}

// TotalItems returns the number of loaded products
func (c *ModelContext) TotalItems() int {
	return len(c.State.Products)
}

// Query returns the committed search query
func (c *ModelContext) Query() string {
	return c.State.Query
}

// LoadMoreEnabled reports whether the load-more button is active
func (c *ModelContext) LoadMoreEnabled() bool {
	return c.State.LoadMoreEnabled()
}

// Pending reports whether a fetch is in flight
func (c *ModelContext) Pending() bool {
	return c.State.Pending()
}
