package keys

import (
	"strings"
)

// PlayerID normalizes a raw player reference into the canonical id used as
// the storage key. It accepts chat mentions of the form "<@U123>",
// "<@U123|alice>" and "@U123" as well as a bare id.
func PlayerID(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimPrefix(s, "@")
	if i := strings.IndexByte(s, '|'); i >= 0 {
		s = s[:i]
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsMention reports whether raw looks like a player mention rather than
// free text.
func IsMention(raw string) bool {
	s := strings.TrimSpace(raw)
	return strings.HasPrefix(s, "<@") || strings.HasPrefix(s, "@")
}

// ItemKey produces the lookup key for a catalog item name.
// Behavior: trims the name, collapses inner whitespace and lower-cases.
func ItemKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
