package rdsload

import "context"

// Loader runs the whole pipeline: configuration, credential, connection,
// CSV read and batched append.
type Loader interface {
	// Load executes one run. On failure the returned error is a *StageError and
	// the Result reports how far the run got.
	Load(ctx context.Context, source ConfigSource) (*Result, error)
}

// ConfigSource produces a validated LoadConfig.
type ConfigSource interface {
	Resolve() (*LoadConfig, error)
}

// CredentialResolver turns a secret reference into a database credential.
type CredentialResolver interface {
	Resolve(ctx context.Context, secretRef, region string) (Credential, error)
}

// TableReader decodes the input file.
type TableReader interface {
	ReadTable(path string) (*Table, error)
}
