package domain

import (
	"context"
	"errors"
)

// Product represents a single catalogue entry as returned by the listing API
type Product struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Brand              string  `json:"brand,omitempty"`
	SKU                string  `json:"sku,omitempty"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Rating             float64 `json:"rating"`
	Stock              int     `json:"stock"`
	Thumbnail          string  `json:"thumbnail,omitempty"`
}

// Page is one slice of search results plus the total match count
type Page struct {
	Items []Product `json:"products"`
	Total int       `json:"total"`
	Skip  int       `json:"skip"`
	Limit int       `json:"limit"`
}

// ErrNoMatches is reported when a search succeeds but yields no products.
// Its text is shown to the user as-is.
var ErrNoMatches = errors.New("No matches found")

// Error kinds used for logging and metrics labels
const (
	KindNoMatches = "no_matches"
	KindCanceled  = "canceled"
	KindHTTP      = "http"
	KindNetwork   = "network"
)

// httpStatusError is implemented by errors that carry an HTTP status code
type httpStatusError interface {
	HTTPStatus() int
}

// ErrorKind classifies a fetch error
func ErrorKind(err error) string {
	var se httpStatusError
	switch {
	case errors.Is(err, ErrNoMatches):
		return KindNoMatches
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.As(err, &se):
		return KindHTTP
	default:
		return KindNetwork
	}
}
