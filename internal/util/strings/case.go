package strings

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts CamelCase to snake_case for file names.
// Handles acronyms (HTTPRequest -> http_request), never doubles an
// underscore (Ppl_Person -> ppl_person) and trims trailing underscores
// (Dog_ -> dog).
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)
	lastUnderscore := true

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if !lastUnderscore {
				result.WriteRune('_')
				lastUnderscore = true
			}
		case unicode.IsUpper(r):
			if i > 0 && !lastUnderscore {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteRune('_')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		default:
			result.WriteRune(r)
			lastUnderscore = false
		}
	}
	return strings.TrimRight(result.String(), "_")
}
