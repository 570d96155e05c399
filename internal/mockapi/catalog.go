// Package mockapi serves a generated product catalogue over the same HTTP
// contract as the listing API, for local development and end-to-end tests.
package mockapi

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"shelf/internal/domain"
)

// skuNamespace scopes generated SKUs so they are stable across runs
var skuNamespace = uuid.MustParse("6f1c2a3e-8d4b-4c71-9f20-5b8e7d3a1c90")

var (
	adjectives = []string{"Classic", "Compact", "Deluxe", "Eco", "Essential", "Pro", "Smart", "Vintage", "Wireless", "Ultra"}
	nouns      = []string{"Laptop", "Phone", "Mascara", "Lamp", "Backpack", "Watch", "Sofa", "Headphones", "Kettle", "Sneakers", "Perfume", "Sunglasses", "Blender"}
	brands     = []string{"Acme", "Essence", "Nordic", "Apex", "Lumen", "Orbit", "Verde"}
	categories = map[string]string{
		"Laptop":     "laptops",
		"Phone":      "smartphones",
		"Mascara":    "beauty",
		"Lamp":       "home-decoration",
		"Backpack":   "bags",
		"Watch":      "watches",
		"Sofa":       "furniture",
		"Headphones": "electronics",
		"Kettle":     "kitchen",
		"Sneakers":   "shoes",
		"Perfume":    "fragrances",
		"Sunglasses": "accessories",
		"Blender":    "kitchen",
	}
)

// Catalog is an immutable, ordered set of products
type Catalog struct {
	products []domain.Product
}

// Generate builds a deterministic catalogue of n products with IDs 1..n
func Generate(n int) *Catalog {
	products := make([]domain.Product, n)
	for i := range products {
		id := i + 1
		noun := nouns[i%len(nouns)]
		adj := adjectives[(i/len(nouns))%len(adjectives)]
		brand := brands[(i*3)%len(brands)]
		title := fmt.Sprintf("%s %s", adj, noun)
		if round := i / (len(nouns) * len(adjectives)); round > 0 {
			title = fmt.Sprintf("%s %d", title, round+1)
		}

		products[i] = domain.Product{
			ID:                 id,
			Title:              title,
			Description:        fmt.Sprintf("The %s %s by %s.", strings.ToLower(adj), strings.ToLower(noun), brand),
			Category:           categories[noun],
			Brand:              brand,
			SKU:                uuid.NewSHA1(skuNamespace, []byte(fmt.Sprintf("product-%d", id))).String(),
			Price:              round2(4.99 + float64((id*37)%500) + float64(id%100)/100),
			DiscountPercentage: round2(float64((id*13)%2000) / 100),
			Rating:             round2(2.5 + float64((id*7)%250)/100),
			Stock:              (id * 17) % 120,
			Thumbnail:          fmt.Sprintf("https://cdn.example.com/products/%d/thumbnail.webp", id),
		}
	}
	return &Catalog{products: products}
}

// Len returns the number of products in the catalogue
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get returns the product with the given ID
func (c *Catalog) Get(id int) (domain.Product, bool) {
	if id < 1 || id > len(c.products) {
		return domain.Product{}, false
	}
	return c.products[id-1], true
}

// Search returns the page of products matching q, case-insensitively, on
// title, brand, category or description. A limit of 0 returns every match
// after skip.
func (c *Catalog) Search(q string, limit, skip int) domain.Page {
	needle := strings.ToLower(strings.TrimSpace(q))
	var matches []domain.Product
	for _, p := range c.products {
		if needle == "" || matchesProduct(p, needle) {
			matches = append(matches, p)
		}
	}

	total := len(matches)
	skip = min(max(skip, 0), total)
	end := total
	if limit > 0 {
		end = min(skip+limit, total)
	}

	items := make([]domain.Product, end-skip)
	copy(items, matches[skip:end])
	return domain.Page{Items: items, Total: total, Skip: skip, Limit: len(items)}
}

func matchesProduct(p domain.Product, needle string) bool {
	for _, field := range []string{p.Title, p.Brand, p.Category, p.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
