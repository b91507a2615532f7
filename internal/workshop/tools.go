package workshop

import (
	"strings"
)

// NormalizeToolName produces the comparison key for owned-tool records:
// lowercased, collapsed whitespace, common size/unit noise trimmed. AI tool
// suggestions and user entries both pass through here, so "10mm Socket " and
// "10MM  socket" land on the same key.
func NormalizeToolName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// MatchesOwnedTool reports whether a suggested tool name matches any owned
// tool. The match is deliberately loose in both directions ("torque wrench"
// owns "1/2 inch torque wrench" and vice versa) but operates on normalized
// names only.
func MatchesOwnedTool(suggested string, ownedNormalized []string) bool {
	s := NormalizeToolName(suggested)
	if s == "" {
		return false
	}
	for _, owned := range ownedNormalized {
		if owned == "" {
			continue
		}
		if strings.Contains(s, owned) || strings.Contains(owned, s) {
			return true
		}
	}
	return false
}
