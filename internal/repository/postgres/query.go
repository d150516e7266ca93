package postgres

import "strings"

// prefixColumns qualifies a comma separated column list with a table alias,
// e.g. prefixColumns("s", "id, name") -> "s.id, s.name".
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
