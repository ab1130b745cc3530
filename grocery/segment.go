package grocery

import (
	"regexp"
	"strings"
)

var itemPattern = compilePattern()

// compilePattern builds: optional number, optional unit, required
// whitespace, one item word. Units keep lexicon order so the first listed
// alternative wins.
func compilePattern() *regexp.Regexp {
	quoted := make([]string, len(units))
	for i, u := range units {
		quoted[i] = regexp.QuoteMeta(u)
	}
	return regexp.MustCompile(
		`\s*(\p{Nd}+(?:[.,]\p{Nd}+)?|\p{Nd}+/\p{Nd}+)?\s*(` +
			strings.Join(quoted, "|") +
			`)?\s+([0-9A-Za-z_\x{0900}-\x{0D7F}-]+)`,
	)
}

// Segment scans normalized text left to right and returns the items in
// transcript order. A word that is itself a unit is never an item.
func Segment(normalized string) []Item {
	matches := itemPattern.FindAllStringSubmatch(normalized, -1)
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		number, unit, word := m[1], m[2], strings.TrimSpace(m[3])
		if word == "" || IsUnit(word) {
			continue
		}
		quantity := DefaultQuantity
		if number != "" || unit != "" {
			quantity = strings.TrimSpace(number + " " + unit)
		}
		items = append(items, Item{Item: word, Quantity: quantity})
	}
	return items
}

// Extract is Segment(Normalize(text)).
func Extract(text string) []Item {
	return Segment(Normalize(text))
}
