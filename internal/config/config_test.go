package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `connection:
  driver: postgres
  host: mydb.cluster.us-east-1.rds.amazonaws.com
  port: 5432
  username: loader
  database: crm
  secret_ref: prod/crm/db
  ssl_ca_path: /etc/ssl/rds-global-bundle.pem
  aws_region: eu-west-1

load:
  file: data/customers.csv
  table: customers_staging
  chunk_size: 500
  create_table: true

timeout: 10m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.Connection.Driver)
	assert.Equal(t, "mydb.cluster.us-east-1.rds.amazonaws.com", cfg.Connection.Host)
	assert.Equal(t, 5432, cfg.Connection.Port)
	assert.Equal(t, "loader", cfg.Connection.Username)
	assert.Equal(t, "crm", cfg.Connection.Database)
	assert.Equal(t, "prod/crm/db", cfg.Connection.SecretRef)
	assert.Equal(t, "/etc/ssl/rds-global-bundle.pem", cfg.Connection.SSLCAPath)
	assert.Equal(t, "eu-west-1", cfg.Connection.Region)
	assert.Equal(t, "data/customers.csv", cfg.Load.File)
	assert.Equal(t, "customers_staging", cfg.Load.Table)
	assert.Equal(t, 500, cfg.Load.ChunkSize)
	assert.True(t, cfg.Load.CreateTable)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `load:
  table: people
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "people", cfg.Load.Table)
	assert.Empty(t, cfg.Connection.Host)
	assert.Zero(t, cfg.Connection.Port)
}

func TestLoad_FileNotFound(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("connection: [not: a map"), 0644))

	cfg, err := LoadFile(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigNotFound))
}

func TestTimeoutDuration(t *testing.T) {
	var nilCfg *FileConfig
	d, err := nilCfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = (&FileConfig{Timeout: "soon"}).TimeoutDuration()
	assert.Error(t, err)
}
