package repo

import (
	"fmt"
	"strings"
)

// Join concatenates non-empty query fragments with single spaces.
func Join(expressions ...string) string {
	parts := make([]string, 0, len(expressions))
	for _, e := range expressions {
		if e = strings.TrimSpace(e); e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, " ")
}

// JoinWhere renders a WHERE clause ANDing the given conditions, or "" when
// there are none.
func JoinWhere(expressions ...string) string {
	if len(expressions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(expressions, " AND ")
}

// Exists wraps a query into SELECT EXISTS(...).
func Exists(inner string) string {
	return fmt.Sprintf("SELECT EXISTS (%s)", inner)
}
