package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used by AWSStore.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSStore reads secrets from AWS Secrets Manager.
// Uses the default AWS credential chain (environment variables, config files, IAM roles, etc.)
type AWSStore struct {
	client SecretsManagerAPI
	region string
}

// NewAWSStore creates a store for region. The SDK's own retryer is limited to
// a single attempt so that Resolver alone decides how often to retry.
func NewAWSStore(ctx context.Context, region string) (*AWSStore, error) {
	if region == "" {
		return nil, fmt.Errorf("AWS Secrets Manager requires a region (use --region or $AWS_REGION)")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewAWSStoreWithClient(secretsmanager.NewFromConfig(cfg), region), nil
}

// NewAWSStoreWithClient wraps an existing client.
func NewAWSStoreWithClient(client SecretsManagerAPI, region string) *AWSStore {
	return &AWSStore{client: client, region: region}
}

// AWSStoreFactory is the StoreFactory for AWS Secrets Manager.
func AWSStoreFactory(ctx context.Context, region string) (Store, error) {
	return NewAWSStore(ctx, region)
}

// GetSecretValue fetches the current version of the secret.
func (s *AWSStore) GetSecretValue(ctx context.Context, ref string) (Value, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(ref),
	})
	if err != nil {
		return Value{}, fmt.Errorf("failed to get secret %s: %w", ref, err)
	}
	return Value{String: out.SecretString, Binary: out.SecretBinary}, nil
}

// String returns a human-readable representation of the store.
func (s *AWSStore) String() string {
	return fmt.Sprintf("AWSStore(region=%s)", s.region)
}
