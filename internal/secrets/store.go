package secrets

import "context"

// Value is a raw secret payload. String is nil when the secret only has a
// binary form.
type Value struct {
	String *string
	Binary []byte
}

// Text returns the string form of the payload, falling back to the binary form.
func (v Value) Text() string {
	if v.String != nil {
		return *v.String
	}
	return string(v.Binary)
}

// Store fetches secret payloads by name or ARN.
type Store interface {
	GetSecretValue(ctx context.Context, ref string) (Value, error)
}

// StoreFactory builds a Store bound to a region.
type StoreFactory func(ctx context.Context, region string) (Store, error)
