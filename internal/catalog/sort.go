package catalog

import (
	"sort"

	"github.com/angelmondragon/sweetshop-backend/pkg/enums"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortProducts orders products in place. Name ordering is locale-aware and
// case-insensitive; price ordering is numeric. The sort is stable, so ties
// keep their input order.
func SortProducts(products []Product, field enums.SortField, order enums.SortOrder) {
	if len(products) < 2 {
		return
	}

	desc := order == enums.SortOrderDesc

	if field == enums.SortFieldPrice {
		sort.SliceStable(products, func(i, j int) bool {
			cmp := products[i].PricePerKg.Cmp(products[j].PricePerKg)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
		return
	}

	// Collators keep scratch buffers and are not safe to share.
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(products, func(i, j int) bool {
		cmp := coll.CompareString(products[i].Name, products[j].Name)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}
