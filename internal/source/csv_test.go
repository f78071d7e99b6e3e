package source

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/rdsload/internal/testing/fixtures"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantColumns []string
		wantRows    [][]string
	}{
		{
			name:        "simple",
			input:       "Index,Name\n1,Ada\n2,Grace\n",
			wantColumns: []string{"Index", "Name"},
			wantRows:    [][]string{{"1", "Ada"}, {"2", "Grace"}},
		},
		{
			name:        "no trailing newline",
			input:       "a,b\n1,2",
			wantColumns: []string{"a", "b"},
			wantRows:    [][]string{{"1", "2"}},
		},
		{
			name:        "empty cells preserved",
			input:       "a,b,c\n1,,3\n",
			wantColumns: []string{"a", "b", "c"},
			wantRows:    [][]string{{"1", "", "3"}},
		},
		{
			name:        "quoted values with separators",
			input:       "name,company\n\"Doe, Jane\",\"Acme \"\"Inc\"\"\"\n",
			wantColumns: []string{"name", "company"},
			wantRows:    [][]string{{"Doe, Jane", `Acme "Inc"`}},
		},
		{
			name:        "crlf line endings",
			input:       "a,b\r\n1,2\r\n",
			wantColumns: []string{"a", "b"},
			wantRows:    [][]string{{"1", "2"}},
		},
		{
			name:        "byte order mark stripped",
			input:       "\ufeffIndex,Name\n1,Ada\n",
			wantColumns: []string{"Index", "Name"},
			wantRows:    [][]string{{"1", "Ada"}},
		},
		{
			name:        "blank lines skipped",
			input:       "a\n1\n\n2\n",
			wantColumns: []string{"a"},
			wantRows:    [][]string{{"1"}, {"2"}},
		},
		{
			name:        "header only",
			input:       "a,b\n",
			wantColumns: []string{"a", "b"},
			wantRows:    nil,
		},
		{
			name:        "column names with spaces kept",
			input:       "Customer Id,Phone 1\nx,y\n",
			wantColumns: []string{"Customer Id", "Phone 1"},
			wantRows:    [][]string{{"x", "y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantColumns, table.Columns)
			assert.Equal(t, tt.wantRows, table.Rows)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantContains string
	}{
		{name: "empty", input: "", wantContains: "no header row"},
		{name: "only newlines", input: "\n\n", wantContains: "no header row"},
		{name: "blank header", input: "a,,c\n1,2,3\n", wantContains: "header column 2 is blank"},
		{name: "whitespace header", input: "a, \n1,2\n", wantContains: "header column 2 is blank"},
		{name: "duplicate header", input: "a,b,a\n1,2,3\n", wantContains: `duplicate header "a"`},
		{name: "too few fields", input: "a,b\n1\n", wantContains: "wrong number of fields"},
		{name: "too many fields", input: "a,b\n1,2,3\n", wantContains: "wrong number of fields"},
		{name: "bare quote", input: "a,b\n1,x\"y\n", wantContains: "bare \""},
		{name: "unterminated quote", input: "a,b\n1,\"open\n", wantContains: "extraneous or missing \""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, rdsload.ErrDataFormat), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestParse_RaggedRowKeepsParseError(t *testing.T) {
	_, err := Parse(strings.NewReader("a,b\n1,2\n3\n"))

	var parseErr *csv.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, parseErr.Line)
	assert.True(t, errors.Is(err, csv.ErrFieldCount))
}

func TestReader_ReadTable(t *testing.T) {
	fs := NewMemoryFileSystem()
	fs.AddFile("data/customers.csv", string(fixtures.NewCustomersBuilder().Generate(7).Build()))

	table, err := NewReader(fs).ReadTable("data/customers.csv")
	require.NoError(t, err)

	assert.Equal(t, fixtures.CustomerColumns, table.Columns)
	assert.Equal(t, 7, table.Len())
	assert.Equal(t, "", table.Rows[2][8], "third record has no second phone")
}

func TestReader_ReadTable_Checksum(t *testing.T) {
	content := "a,b\n1,2\n"
	fs := NewMemoryFileSystem()
	fs.AddFile("x.csv", content)
	fs.AddFile("y.csv", "a,b\n1,3\n")

	x, err := NewReader(fs).ReadTable("x.csv")
	require.NoError(t, err)
	y, err := NewReader(fs).ReadTable("y.csv")
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), x.Checksum)
	assert.NotEqual(t, x.Checksum, y.Checksum)

	parsed, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	assert.Empty(t, parsed.Checksum, "Parse has no file to fingerprint")
}

func TestReader_ReadTable_Errors(t *testing.T) {
	fs := NewMemoryFileSystem()
	fs.AddFile("empty.csv", "")
	fs.AddFile("broken.csv", "a,b\n1\n")

	tests := []struct {
		name         string
		path         string
		wantContains string
	}{
		{name: "missing", path: "missing.csv", wantContains: "cannot access missing.csv"},
		{name: "zero bytes", path: "empty.csv", wantContains: "empty.csv is empty"},
		{name: "ragged", path: "broken.csv", wantContains: "broken.csv:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(fs).ReadTable(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, rdsload.ErrDataFormat))
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestReadCSV_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := fixtures.NewCustomersBuilder().Generate(3).WriteFile(t, dir)

	table, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = ReadCSV(dir)
	assert.True(t, errors.Is(err, rdsload.ErrDataFormat))
	assert.Contains(t, err.Error(), "is a directory")

	_, err = ReadCSV(filepath.Join(dir, "nope.csv"))
	assert.True(t, errors.Is(err, rdsload.ErrDataFormat))
}

func BenchmarkParse(b *testing.B) {
	content := string(fixtures.NewCustomersBuilder().Generate(10000).Build())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(strings.NewReader(content)); err != nil {
			b.Fatal(err)
		}
	}
}
