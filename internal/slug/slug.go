// Package slug builds URL-safe identifiers from human names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make lowercases the input, strips diacritics and collapses every
// non-alphanumeric run into a single hyphen. "Sabores Tropicales" →
// "sabores-tropicales", "Melón" → "melon".
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// NFD decomposition so combining marks can be dropped.
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	var out strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range b.String() {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			out.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(out.String(), "-")
}
