package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the project file looked up in the working directory.
const ConfigFileName = "rdsload.yaml"

type ConnectionConfig struct {
	Driver    string `yaml:"driver,omitempty"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port,omitempty"`
	Username  string `yaml:"username"`
	Database  string `yaml:"database"`
	SecretRef string `yaml:"secret_ref"`
	SSLCAPath string `yaml:"ssl_ca_path,omitempty"`
	Region    string `yaml:"aws_region,omitempty"`
}

type LoadSection struct {
	File        string `yaml:"file,omitempty"`
	Table       string `yaml:"table,omitempty"`
	ChunkSize   int    `yaml:"chunk_size,omitempty"`
	CreateTable bool   `yaml:"create_table,omitempty"`
}

// FileConfig is the shape of rdsload.yaml. Every field is optional and
// acts as a default beneath environment variables and flags.
type FileConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadSection      `yaml:"load"`
	Timeout    string           `yaml:"timeout,omitempty"`
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*FileConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and decodes the config file at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses the timeout field. An empty value yields zero.
func (c *FileConfig) TimeoutDuration() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in %s: %w", c.Timeout, ConfigFileName, err)
	}
	return d, nil
}
