package prompt

import "strings"

// NormalizeIngredients cleans a raw comma-separated ingredient string before
// it goes into a prompt: trim, drop empties, lowercase, dedupe keeping
// first-seen order, cap at maxItems tokens, re-join with ", ", then hard-cut
// to maxChars. The character cut can land mid-name; that is accepted, the
// model is told to cope with a partial tail.
func NormalizeIngredients(raw string, maxItems, maxChars int) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToLower(strings.TrimSpace(p))
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		normalized = append(normalized, token)
		if len(normalized) >= maxItems {
			break
		}
	}
	joined := strings.Join(normalized, ", ")
	if len(joined) > maxChars {
		return joined[:maxChars]
	}
	return joined
}
