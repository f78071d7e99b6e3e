package secrets

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/vvka-141/rdsload/pkg/rdsload"
)

// PasswordField is the key read from JSON object secrets.
const PasswordField = "password"

// ExtractPassword returns the database password held in v.
//
// A JSON object must carry a non-empty string "password" field. Any other
// payload, including JSON that is not an object, is the password itself.
func ExtractPassword(v Value) (string, error) {
	text := v.Text()
	if text == "" {
		return "", fmt.Errorf("secret is empty: %w", rdsload.ErrSecretResolution)
	}

	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return text, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return text, nil
	}

	raw, ok := fields[PasswordField]
	if !ok {
		return "", fmt.Errorf("no %q field found in secret: %w", PasswordField, rdsload.ErrSecretResolution)
	}
	password, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%q field in secret is %T, not a string: %w", PasswordField, raw, rdsload.ErrSecretResolution)
	}
	if password == "" {
		return "", fmt.Errorf("%q field in secret is empty: %w", PasswordField, rdsload.ErrSecretResolution)
	}
	return password, nil
}
