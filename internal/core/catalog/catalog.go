package catalog

import "time"

// Category groups GI products into one claimable unit of the program.
//
// The catalog is maintained by the program office and is read-only for this
// service: registrations reference categories, they never mutate them.
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description"`
	SortOrder   int       `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// Product is a single GI product. Every product belongs to exactly one
// category; CategoryID is fixed for the lifetime of the product.
type Product struct {
	ID          int       `json:"id"`
	CategoryID  int       `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}
