package browser

import (
	"slices"

	"shelf/internal/domain"
)

// Event is an input to Reduce
type Event interface {
	event()
}

// Mounted starts the first fetch. Ignored unless the state is idle.
type Mounted struct{}

// QueryChanged commits a new (already debounced) search query
type QueryChanged struct {
	Query string
}

// LoadMoreRequested asks for the next page of the current query
type LoadMoreRequested struct{}

// Reloaded re-issues the fetch for the current query and page
type Reloaded struct{}

// FetchSucceeded delivers the API response for a request
type FetchSucceeded struct {
	Generation uint64
	Page       domain.Page
}

// FetchFailed delivers a request failure
type FetchFailed struct {
	Generation uint64
	Err        error
}

func (Mounted) event()           {}
func (QueryChanged) event()      {}
func (LoadMoreRequested) event() {}
func (Reloaded) event()          {}
func (FetchSucceeded) event()    {}
func (FetchFailed) event()       {}

// Reduce applies ev to s. It returns the next state and, when a fetch must
// start, the request to perform. Reduce never mutates s.
func Reduce(s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case Mounted:
		if s.Status != StatusIdle {
			return s, nil
		}
		s.Page = 1
		return issue(s)

	case QueryChanged:
		s.Query = ev.Query
		s.Page = 1
		s.TotalPages = 0
		s.Products = nil
		return issue(s)

	case LoadMoreRequested:
		if s.Status == StatusPending || s.Page >= s.TotalPages {
			return s, nil
		}
		s.Page++
		return issue(s)

	case Reloaded:
		if s.Status == StatusPending {
			return s, nil
		}
		if s.Page < 1 {
			s.Page = 1
		}
		return issue(s)

	case FetchSucceeded:
		if ev.Generation != s.Generation || s.Status != StatusPending {
			return s, nil
		}
		if len(ev.Page.Items) == 0 {
			return reject(s, domain.ErrNoMatches), nil
		}
		// Clone so the previous state's slice is never shared with appends.
		products := slices.Clip(slices.Clone(s.Products))
		s.Products = append(products, ev.Page.Items...)
		s.TotalPages = totalPages(ev.Page.Total, s.PageSize)
		s.Status = StatusResolved
		s.Err = ""
		return s, nil

	case FetchFailed:
		if ev.Generation != s.Generation || s.Status != StatusPending {
			return s, nil
		}
		return reject(s, ev.Err), nil
	}

	return s, nil
}

func issue(s State) (State, *Request) {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	s.Generation++
	s.Status = StatusPending
	s.Err = ""
	return s, &Request{
		Generation: s.Generation,
		Query:      s.Query,
		Page:       s.Page,
		Limit:      s.PageSize,
		Offset:     s.Offset(),
	}
}

func reject(s State, err error) State {
	s.Status = StatusRejected
	if err == nil {
		err = domain.ErrNoMatches
	}
	s.Err = err.Error()
	return s
}
