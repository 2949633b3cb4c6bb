package domain

import (
	"strings"
)

var umlautReplacer = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// Slugify lowercases s, transliterates German umlauts and collapses every run of characters
// outside [a-z0-9] into a single dash. Leading and trailing dashes are removed.
func Slugify(s string) string {
	s = umlautReplacer.Replace(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}
