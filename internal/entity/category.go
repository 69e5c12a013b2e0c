package entity

import "fmt"

// Category is the closed set of collections a document can be filed under.
// Handlers parse free-form input through ParseCategory once; everything past
// the boundary works with the typed value.
type Category string

const (
	CategoryBasic  Category = "Basic"
	CategoryWeb    Category = "Web"
	CategoryMobile Category = "Mobile"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategoryBasic, CategoryWeb, CategoryMobile}
}

// ParseCategory validates a raw label against the closed set. Matching is
// exact; the wire labels are case-sensitive.
func ParseCategory(label string) (Category, error) {
	switch Category(label) {
	case CategoryBasic, CategoryWeb, CategoryMobile:
		return Category(label), nil
	}
	return "", fmt.Errorf("invalid category %q (must be one of Basic, Web, Mobile)", label)
}

func (c Category) String() string {
	return string(c)
}
