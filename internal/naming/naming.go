// Package naming derives context and template names from Go model type names.
package naming

import (
	"strings"
	"unicode"
)

// Snake converts a CamelCase type name to snake_case, keeping acronym runs
// together: "BlogPost" becomes "blog_post", "HTTPError" becomes "http_error".
func Snake(name string) string {
	var b strings.Builder
	runes := []rune(name)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
