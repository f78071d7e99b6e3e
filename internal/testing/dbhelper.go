package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/vvka-141/rdsload/internal/testinfra"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

var (
	mysqlOnce sync.Once
	mysqlEP   testinfra.Endpoint
	mysqlErr  error

	postgresOnce sync.Once
	postgresEP   testinfra.Endpoint
	postgresErr  error
)

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireMySQL returns a MySQL endpoint shared by every test in the binary,
// starting a container on first use. Skips when Docker is unavailable or
// RDSLOAD_SKIP_DOCKER is set.
func RequireMySQL(t *testing.T) testinfra.Endpoint {
	t.Helper()

	SkipIfShort(t)
	skipWithoutDocker(t)

	mysqlOnce.Do(func() {
		ctr, err := testinfra.StartMySQL(context.Background())
		if err != nil {
			mysqlErr = err
			return
		}
		mysqlEP = ctr.Endpoint
	})
	if mysqlErr != nil {
		t.Skipf("MySQL container unavailable: %v", mysqlErr)
	}
	return mysqlEP
}

// RequirePostgres is RequireMySQL for PostgreSQL.
func RequirePostgres(t *testing.T) testinfra.Endpoint {
	t.Helper()

	SkipIfShort(t)
	skipWithoutDocker(t)

	postgresOnce.Do(func() {
		ctr, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			postgresErr = err
			return
		}
		postgresEP = ctr.Endpoint
	})
	if postgresErr != nil {
		t.Skipf("PostgreSQL container unavailable: %v", postgresErr)
	}
	return postgresEP
}

func skipWithoutDocker(t *testing.T) {
	t.Helper()

	if os.Getenv("RDSLOAD_SKIP_DOCKER") != "" {
		t.Skip("RDSLOAD_SKIP_DOCKER set")
	}
}

// LoadConfigFor builds a valid LoadConfig pointing at ep.
func LoadConfigFor(ep testinfra.Endpoint, driver rdsload.Driver, table string) *rdsload.LoadConfig {
	return &rdsload.LoadConfig{
		Host:      ep.Host,
		Port:      ep.Port,
		Database:  ep.Database,
		Username:  ep.Username,
		SecretRef: "test/" + ep.Database,
		Region:    rdsload.DefaultRegion,
		Driver:    driver,
		CSVPath:   rdsload.DefaultCSVPath,
		Table:     table,
		ChunkSize: rdsload.DefaultChunkSize,
		Timeout:   rdsload.DefaultRunTimeout,
	}
}
