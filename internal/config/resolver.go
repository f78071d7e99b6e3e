package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// Overrides carries values set explicitly on the command line.
// Zero values mean "not set" and let lower layers through. ChunkSize is a
// pointer so an explicit zero reaches validation instead of being skipped.
type Overrides struct {
	Driver    string
	Region    string
	CSVPath   string
	Table     string
	ChunkSize *int
	Timeout   time.Duration
	Verbose   bool

	// CreateTable can only switch table creation on
	CreateTable bool
}

// Resolver assembles a LoadConfig from, in increasing precedence: built-in
// defaults, the optional config file, the environment and flag overrides.
// It implements rdsload.ConfigSource.
type Resolver struct {
	getenv    func(string) string
	file      *FileConfig
	overrides Overrides
	logger    rdsload.Logger
}

// NewResolver creates a Resolver. getenv is usually os.Getenv; file may be nil.
func NewResolver(getenv func(string) string, file *FileConfig, overrides Overrides, logger rdsload.Logger) *Resolver {
	if getenv == nil {
		panic("getenv cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Resolver{getenv: getenv, file: file, overrides: overrides, logger: logger}
}

// Resolve is a shorthand for NewResolver(getenv, file, Overrides{}, logger).Resolve().
func Resolve(getenv func(string) string, file *FileConfig, logger rdsload.Logger) (*rdsload.LoadConfig, error) {
	return NewResolver(getenv, file, Overrides{}, logger).Resolve()
}

// Resolve builds and validates the configuration. A missing or unusable port
// falls back to rdsload.DefaultPort with a warning; missing required keys are
// all named in a single error wrapping rdsload.ErrConfiguration.
func (r *Resolver) Resolve() (*rdsload.LoadConfig, error) {
	file := r.file
	if file == nil {
		file = &FileConfig{}
	}
	conn := file.Connection

	cfg := &rdsload.LoadConfig{
		Host:      r.pick(rdsload.EnvHost, conn.Host),
		Database:  r.pick(rdsload.EnvDatabase, conn.Database),
		Username:  r.pick(rdsload.EnvUsername, conn.Username),
		SecretRef: r.pick(rdsload.EnvSecretRef, conn.SecretRef),
		SSLCAPath: r.pick(rdsload.EnvSSLCAPath, conn.SSLCAPath),
		Region:    firstNonEmpty(r.overrides.Region, r.pick(rdsload.EnvRegion, conn.Region), rdsload.DefaultRegion),
		CSVPath:   firstNonEmpty(r.overrides.CSVPath, file.Load.File, rdsload.DefaultCSVPath),
		Table:     firstNonEmpty(r.overrides.Table, file.Load.Table, rdsload.DefaultTable),
		ChunkSize: rdsload.DefaultChunkSize,
		Timeout:   rdsload.DefaultRunTimeout,
		Verbose:   r.overrides.Verbose,

		CreateTable: r.overrides.CreateTable || file.Load.CreateTable,
	}
	cfg.Port = r.resolvePort(conn.Port)

	driver, driverErr := rdsload.ParseDriver(firstNonEmpty(r.overrides.Driver, r.pick(rdsload.EnvDriver, conn.Driver)))
	cfg.Driver = driver

	switch {
	case r.overrides.ChunkSize != nil:
		cfg.ChunkSize = *r.overrides.ChunkSize
	case file.Load.ChunkSize != 0:
		cfg.ChunkSize = file.Load.ChunkSize
	}

	fileTimeout, timeoutErr := file.TimeoutDuration()
	if timeoutErr != nil {
		timeoutErr = fmt.Errorf("%v: %w", timeoutErr, rdsload.ErrConfiguration)
	}
	switch {
	case r.overrides.Timeout != 0:
		cfg.Timeout = r.overrides.Timeout
	case fileTimeout != 0:
		cfg.Timeout = fileTimeout
	}

	if err := errors.Join(driverErr, timeoutErr, cfg.Validate()); err != nil {
		return nil, err
	}

	r.logger.Verbose("configuration resolved",
		"driver", string(cfg.Driver),
		"address", cfg.Address(),
		"database", cfg.Database,
		"username", cfg.Username,
		"region", cfg.Region,
		"ssl_ca", cfg.SSLCAPath != "",
	)
	return cfg, nil
}

// pick returns the trimmed environment value for key, or fallback when unset.
func (r *Resolver) pick(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *Resolver) resolvePort(filePort int) int {
	raw := strings.TrimSpace(r.getenv(rdsload.EnvPort))
	if raw == "" {
		if filePort > 0 && filePort <= 65535 {
			return filePort
		}
		r.logger.Warn("database port not set, using default",
			"key", rdsload.EnvPort, "port", rdsload.DefaultPort)
		return rdsload.DefaultPort
	}

	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		r.logger.Warn("invalid database port, using default",
			"key", rdsload.EnvPort, "value", raw, "port", rdsload.DefaultPort)
		return rdsload.DefaultPort
	}
	return port
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
