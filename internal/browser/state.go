// Package browser holds the product browser's search, pagination and fetch
// state as a plain value and the reducer that advances it.
package browser

import (
	"shelf/internal/domain"
)

// DefaultPageSize is the number of products requested per page
const DefaultPageSize = 30

// Status is the lifecycle stage of the current fetch
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusResolved
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// State is everything the browser knows about the current search
type State struct {
	Query      string
	Page       int // current page, 1-based; 0 before the first fetch
	PageSize   int
	TotalPages int
	Products   []domain.Product
	Status     Status
	Err        string // set only while Status is StatusRejected

	// Generation identifies the most recently issued request. Responses
	// carrying any other generation are stale.
	Generation uint64
}

// Request describes a fetch the caller must perform
type Request struct {
	Generation uint64
	Query      string
	Page       int
	Limit      int
	Offset     int
}

// New returns an idle state with the given page size
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{PageSize: pageSize}
}

// Offset is the number of products preceding the current page
func (s State) Offset() int {
	if s.Page <= 1 {
		return 0
	}
	return (s.Page - 1) * s.PageSize
}

// CanLoadMore reports whether another page exists for the current query
func (s State) CanLoadMore() bool {
	return len(s.Products) > 0 && s.Page < s.TotalPages
}

// LoadMoreEnabled reports whether a load-more action would start a fetch
func (s State) LoadMoreEnabled() bool {
	return s.CanLoadMore() && s.Status != StatusPending
}

// Pending reports whether a request is in flight
func (s State) Pending() bool {
	return s.Status == StatusPending
}

// totalPages is ceil(total / pageSize)
func totalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
