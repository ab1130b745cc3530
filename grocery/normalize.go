package grocery

import "strings"

// Normalize lowercases text, removes fillers and collapses whitespace.
//
// Fillers are removed as raw substrings, so a word that contains one is
// shortened too ("sirloin" becomes "loin"). Removal repeats until no filler
// is left, which keeps Normalize idempotent.
func Normalize(text string) string {
	s := strings.ToLower(text)
	for {
		stripped := s
		for _, f := range Fillers {
			stripped = strings.ReplaceAll(stripped, f, "")
		}
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.Join(strings.Fields(s), " ")
}
