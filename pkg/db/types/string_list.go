package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList persists a []string as a JSON array in a text column, which
// keeps the schema portable between postgres and sqlite.
type StringList []string

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return l.parse([]byte(v))
	case []byte:
		return l.parse(v)
	default:
		return fmt.Errorf("StringList: unsupported Scan type %T", src)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("StringList: marshal: %w", err)
	}
	return string(b), nil
}

func (l *StringList) parse(raw []byte) error {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "[]" {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return fmt.Errorf("StringList: parse %q: %w", s, err)
	}
	*l = StringList(out)
	return nil
}
