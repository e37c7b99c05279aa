package mysql

import "strings"

// jsonOrDefault substitutes def when s holds no JSON text; the analysis
// columns require valid JSON of the matching kind (array for ingredients,
// object for the result).
func jsonOrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
