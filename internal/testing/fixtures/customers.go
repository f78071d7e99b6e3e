package fixtures

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// CustomerColumns is the header of the customers sample dataset.
var CustomerColumns = []string{
	"Index", "Customer Id", "First Name", "Last Name", "Company", "City",
	"Country", "Phone 1", "Phone 2", "Email", "Subscription Date", "Website",
}

// CSVBuilder provides a fluent API for building CSV input files.
//
// Example usage:
//
//	path := NewCustomersBuilder().
//	    Generate(2500).
//	    AddRow("2501", "x", "", ...).
//	    WriteFile(t, t.TempDir())
type CSVBuilder struct {
	columns []string
	rows    [][]string
}

// NewCSVBuilder creates a builder with the given header.
func NewCSVBuilder(columns ...string) *CSVBuilder {
	return &CSVBuilder{columns: columns}
}

// NewCustomersBuilder creates a builder with CustomerColumns as header.
func NewCustomersBuilder() *CSVBuilder {
	return NewCSVBuilder(CustomerColumns...)
}

// AddRow appends one record verbatim.
func (b *CSVBuilder) AddRow(values ...string) *CSVBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Generate appends n deterministic records. Every third record leaves
// "Phone 2" empty to exercise NULL handling.
func (b *CSVBuilder) Generate(n int) *CSVBuilder {
	start := len(b.rows)
	for i := start + 1; i <= start+n; i++ {
		row := make([]string, len(b.columns))
		for c, col := range b.columns {
			row[c] = fmt.Sprintf("%s-%d", col, i)
		}
		if len(row) > 0 {
			row[0] = fmt.Sprintf("%d", i)
		}
		if len(row) > 8 && i%3 == 0 {
			row[8] = ""
		}
		b.rows = append(b.rows, row)
	}
	return b
}

// Rows returns the records added so far.
func (b *CSVBuilder) Rows() [][]string {
	return b.rows
}

// Build renders the CSV document.
func (b *CSVBuilder) Build() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(b.columns)
	_ = w.WriteAll(b.rows)
	return buf.Bytes()
}

// WriteFile writes the CSV document to dir and returns its path.
func (b *CSVBuilder) WriteFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "customers.csv")
	if err := os.WriteFile(path, b.Build(), 0644); err != nil {
		t.Fatalf("Failed to write CSV fixture: %v", err)
	}
	return path
}
