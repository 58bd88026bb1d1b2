package validators

import "strings"

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// SanitizeQuery trims a free text query value and caps its length.
func SanitizeQuery(values map[string][]string, key string, maxLen int) string {
	raw := values[key]
	if len(raw) == 0 {
		return ""
	}
	return SanitizeString(raw[0], maxLen)
}
