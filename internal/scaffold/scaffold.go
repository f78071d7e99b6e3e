package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ErrFileExists is returned when a target file exists and overwriting was not requested.
var ErrFileExists = errors.New("file already exists")

// files maps each template to the file it produces.
var files = []struct {
	template string
	target   string
}{
	{"templates/rdsload.yaml.tmpl", "rdsload.yaml"},
	{"templates/env.example.tmpl", ".env.example"},
}

// Values are the defaults written into the generated files.
type Values struct {
	Driver    rdsload.Driver
	Port      int
	Region    string
	File      string
	Table     string
	ChunkSize int
	Timeout   string
}

// DefaultValues returns Values for driver using the loader's built-in defaults.
func DefaultValues(driver rdsload.Driver) Values {
	port := rdsload.DefaultPort
	if driver == rdsload.DriverPostgres {
		port = 5432
	}
	return Values{
		Driver:    driver,
		Port:      port,
		Region:    rdsload.DefaultRegion,
		File:      rdsload.DefaultCSVPath,
		Table:     rdsload.DefaultTable,
		ChunkSize: rdsload.DefaultChunkSize,
		Timeout:   rdsload.DefaultRunTimeout.String(),
	}
}

// Scaffolder writes starter configuration files.
type Scaffolder struct {
	logger rdsload.Logger
}

// NewScaffolder creates a new Scaffolder instance
func NewScaffolder(logger rdsload.Logger) *Scaffolder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{logger: logger}
}

// Init renders every template into dir and returns the paths written.
// Nothing is written when a target exists and force is false.
func (s *Scaffolder) Init(dir string, values Values, force bool) ([]string, error) {
	rendered := make([][]byte, len(files))
	for i, f := range files {
		target := filepath.Join(dir, f.target)
		if !force {
			if _, err := os.Stat(target); err == nil {
				return nil, fmt.Errorf("%s: %w (use --force to overwrite)", target, ErrFileExists)
			}
		}

		content, err := render(f.template, values)
		if err != nil {
			return nil, err
		}
		rendered[i] = content
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	written := make([]string, 0, len(files))
	for i, f := range files {
		target := filepath.Join(dir, f.target)
		if err := os.WriteFile(target, rendered[i], 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		s.logger.Verbose("created file", "path", target)
		written = append(written, target)
	}
	return written, nil
}

func render(name string, values Values) ([]byte, error) {
	tmpl, err := template.ParseFS(templatesFS, name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
