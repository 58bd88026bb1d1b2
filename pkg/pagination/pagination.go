package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size used when a limit is not provided.
	DefaultLimit = 100
	// MaxLimit caps how many rows an offset query can request.
	MaxLimit = 500
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Skip  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Normalize clamps skip to zero and applies NormalizeLimit.
func (p Params) Normalize() Params {
	if p.Skip < 0 {
		p.Skip = 0
	}
	p.Limit = NormalizeLimit(p.Limit)
	return p
}

// Parse reads raw skip/limit query values. Empty values use defaults.
func Parse(skipRaw, limitRaw string) (Params, error) {
	var p Params
	if s := strings.TrimSpace(skipRaw); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return Params{}, fmt.Errorf("invalid skip %q", skipRaw)
		}
		p.Skip = v
	}
	if s := strings.TrimSpace(limitRaw); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return Params{}, fmt.Errorf("invalid limit %q", limitRaw)
		}
		p.Limit = v
	}
	return p.Normalize(), nil
}
