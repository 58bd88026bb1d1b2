package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterProducts keeps products whose category equals q.Category (when set)
// and whose name or description contains q.Search, ignoring case (when set).
// The input slice is not modified.
func FilterProducts(products []Product, q Query) []Product {
	out := make([]Product, 0, len(products))
	m := newMatcher(q)
	for _, p := range products {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

type matcher struct {
	category string
	needle   string
	fold     cases.Caser
}

func newMatcher(q Query) matcher {
	fold := cases.Fold()
	return matcher{
		category: q.Category,
		needle:   fold.String(q.Search),
		fold:     fold,
	}
}

func (m matcher) match(p Product) bool {
	if m.category != "" && p.Category != m.category {
		return false
	}
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.fold.String(p.Name), m.needle) ||
		strings.Contains(m.fold.String(p.Description), m.needle)
}
