package db

import (
	"fmt"
	"strings"
)

// Dialect captures the SQL syntax differences between supported engines.
type Dialect struct {
	Name string

	// quote is the identifier quote character
	quote byte

	// placeholder renders the n-th (1-based) bind parameter
	placeholder func(n int) string
}

var (
	MySQLDialect = Dialect{
		Name:        "mysql",
		quote:       '`',
		placeholder: func(int) string { return "?" },
	}

	PostgresDialect = Dialect{
		Name:        "postgres",
		quote:       '"',
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// QuoteIdentifier quotes a possibly schema-qualified identifier such as
// "sales.customers". Embedded quote characters are doubled.
func (d Dialect) QuoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	q := string(d.quote)
	for i, part := range parts {
		parts[i] = q + strings.ReplaceAll(part, q, q+q) + q
	}
	return strings.Join(parts, ".")
}

// BuildInsert renders one INSERT statement appending rowCount rows of
// len(columns) values each.
//
//	INSERT INTO `customers` (`id`, `name`) VALUES (?, ?), (?, ?)
func (d Dialect) BuildInsert(table string, columns []string, rowCount int) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(d.QuoteIdentifier(table))
	sb.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.QuoteIdentifier(col))
	}
	sb.WriteString(") VALUES ")

	n := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.placeholder(n))
			n++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
