package ui

import (
	"shelf/internal/browser"
	"shelf/internal/domain"
)

// fetchResultMsg carries the outcome of a product page request
type fetchResultMsg struct {
	req  browser.Request
	page domain.Page
	err  error
}

// queryCommittedMsg is delivered when the search debouncer fires
type queryCommittedMsg struct {
	query string
}

// pagerMsg contains the result of showing a product in the pager
type pagerMsg struct {
	productID int
	err       error
}

// clearStatusMsg expires a transient status message
type clearStatusMsg struct {
	seq int
}
