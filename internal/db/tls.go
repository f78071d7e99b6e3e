package db

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// LoadCAPool reads a PEM bundle such as the RDS global certificate bundle.
func LoadCAPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle %s: %w", path, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no PEM certificates found in %s", path)
	}
	return pool, nil
}

// tlsConfigFor verifies the server certificate against the CA bundle at
// caPath and the expected host name.
func tlsConfigFor(host, caPath string) (*tls.Config, error) {
	pool, err := LoadCAPool(caPath)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		RootCAs:    pool,
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}, nil
}
