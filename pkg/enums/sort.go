package enums

import (
	"fmt"
	"strings"
)

// SortKey is the storefront sort selector.
type SortKey string

const (
	SortKeyName      SortKey = "name"
	SortKeyPriceLow  SortKey = "price-low"
	SortKeyPriceHigh SortKey = "price-high"
)

var validSortKeys = []SortKey{SortKeyName, SortKeyPriceLow, SortKeyPriceHigh}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input means name.
func ParseSortKey(value string) (SortKey, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return SortKeyName, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortField is the product attribute a data source orders by.
type SortField string

const (
	SortFieldName  SortField = "name"
	SortFieldPrice SortField = "price"
)

// String implements fmt.Stringer.
func (f SortField) String() string {
	return string(f)
}

// IsValid reports whether the value is a known SortField.
func (f SortField) IsValid() bool {
	return f == SortFieldName || f == SortFieldPrice
}

// ParseSortField converts raw input into a SortField. Empty input means name.
func ParseSortField(value string) (SortField, error) {
	switch SortField(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortFieldName:
		return SortFieldName, nil
	case SortFieldPrice:
		return SortFieldPrice, nil
	}
	return "", fmt.Errorf("invalid sort field %q", value)
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	return string(o)
}

// IsValid reports whether the value is a known SortOrder.
func (o SortOrder) IsValid() bool {
	return o == SortOrderAsc || o == SortOrderDesc
}

// ParseSortOrder converts raw input into a SortOrder. Empty input means asc.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortOrderAsc:
		return SortOrderAsc, nil
	case SortOrderDesc:
		return SortOrderDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
