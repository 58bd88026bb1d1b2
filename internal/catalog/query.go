package catalog

import (
	"strings"

	"github.com/angelmondragon/sweetshop-backend/pkg/enums"
)

// Selection is the shopper-facing filter state.
type Selection struct {
	SelectedCategory string        `json:"selected_category"`
	SortBy           enums.SortKey `json:"sort_by"`
	SearchQuery      string        `json:"search_query"`
}

// Query is the normalized request sent to a data source. Empty Category or
// Search means the constraint is absent.
type Query struct {
	Category  string          `json:"category,omitempty"`
	Search    string          `json:"search,omitempty"`
	SortField enums.SortField `json:"sort_by"`
	SortOrder enums.SortOrder `json:"sort_order"`
}

// BuildQuery turns a Selection into a Query. It never fails.
func BuildQuery(sel Selection) Query {
	q := Query{
		SortField: enums.SortFieldPrice,
		SortOrder: enums.SortOrderAsc,
	}

	if cat := strings.TrimSpace(sel.SelectedCategory); cat != "" && cat != AllCategoryID {
		q.Category = cat
	}
	if search := strings.TrimSpace(sel.SearchQuery); search != "" {
		q.Search = search
	}
	if sel.SortBy == enums.SortKeyName {
		q.SortField = enums.SortFieldName
	}
	if sel.SortBy == enums.SortKeyPriceHigh {
		q.SortOrder = enums.SortOrderDesc
	}
	return q
}

// Broadened drops every constraint except search and resets ordering to
// name ascending.
func (q Query) Broadened() Query {
	return Query{
		Search:    q.Search,
		SortField: enums.SortFieldName,
		SortOrder: enums.SortOrderAsc,
	}
}

// Normalized fills in default ordering and trims free-text constraints.
func (q Query) Normalized() Query {
	q.Category = strings.TrimSpace(q.Category)
	q.Search = strings.TrimSpace(q.Search)
	if !q.SortField.IsValid() {
		q.SortField = enums.SortFieldName
	}
	if !q.SortOrder.IsValid() {
		q.SortOrder = enums.SortOrderAsc
	}
	return q
}
