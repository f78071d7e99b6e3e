package source

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

const utf8BOM = "\ufeff"

// Reader loads CSV files from a FileSystem.
type Reader struct {
	fs FileSystem
}

// NewReader creates a Reader. A nil fs reads from the local disk.
func NewReader(fs FileSystem) *Reader {
	if fs == nil {
		fs = NewOSFileSystem()
	}
	return &Reader{fs: fs}
}

// ReadTable reads and decodes the CSV at path and records the SHA-256 of
// its bytes in Table.Checksum. Every failure wraps rdsload.ErrDataFormat.
func (r *Reader) ReadTable(path string) (*rdsload.Table, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot access %s: %w", rdsload.ErrDataFormat, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", rdsload.ErrDataFormat, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", rdsload.ErrDataFormat, path)
	}

	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", rdsload.ErrDataFormat, path, err)
	}
	defer f.Close()

	hash := sha256.New()
	table, err := Parse(io.TeeReader(f, hash))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table.Checksum = hex.EncodeToString(hash.Sum(nil))
	return table, nil
}

// ReadCSV reads the CSV at path from the local disk.
func ReadCSV(path string) (*rdsload.Table, error) {
	return NewReader(nil).ReadTable(path)
}

// Parse decodes CSV content. The first record is the header. A header with
// no data rows yields an empty table.
func Parse(in io.Reader) (*rdsload.Table, error) {
	cr := csv.NewReader(in)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", rdsload.ErrDataFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rdsload.ErrDataFormat, err)
	}

	columns, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	table := &rdsload.Table{Columns: columns}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", rdsload.ErrDataFormat, err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

func parseHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	copy(columns, header)
	columns[0] = strings.TrimPrefix(columns[0], utf8BOM)

	seen := make(map[string]int, len(columns))
	for i, name := range columns {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: header column %d is blank", rdsload.ErrDataFormat, i+1)
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate header %q in columns %d and %d", rdsload.ErrDataFormat, name, prev+1, i+1)
		}
		seen[name] = i
	}
	return columns, nil
}

var _ rdsload.TableReader = (*Reader)(nil)
