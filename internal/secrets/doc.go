// Package secrets resolves the database password from a secret store.
//
// A Resolver fetches the secret through a Store, retrying failed lookups with
// linear backoff, and extracts the password from the payload:
//   - a JSON object yields its "password" field
//   - any other payload is used verbatim
//
// AWSStore is the production Store backed by AWS Secrets Manager.
package secrets
