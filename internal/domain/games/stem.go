package games

import "strings"

// editionPhrases are platform/edition suffixes that carry no identity.
// Order matters: longer phrases containing shorter ones come first.
var editionPhrases = []string{
	"nintendo switch edition",
	"switch edition",
	"for nintendo switch",
	" digital version",
}

// Stem maps a display name to the canonical key used for indexing and matching.
// It lower-cases, keeps only ASCII letters, digits and spaces, strips edition
// noise and trims. Stem(Stem(x)) == Stem(x) for every x.
func Stem(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	stem := b.String()
	for {
		next := stem
		for _, phrase := range editionPhrases {
			next = strings.ReplaceAll(next, phrase, "")
		}
		next = strings.TrimSpace(next)
		if next == stem {
			return stem
		}
		stem = next
	}
}
