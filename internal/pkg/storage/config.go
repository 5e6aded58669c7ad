package storage

import (
	"github.com/sparkcreatives/donations-api/internal/pkg/env"
)

// Config holds the object-storage settings for the data room.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	EndpointURL     string // Optional for S3-compatible services
	SecureBucket    string
	PublicBucket    string
}

// LoadConfig reads the data-room storage configuration from environment
// variables. Credentials may be omitted when the runtime provides them via
// the default AWS credential chain.
func LoadConfig() *Config {
	return &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		SecureBucket:    env.GetEnv("DATAROOM_BUCKET_SECURE", "spark-secure"),
		PublicBucket:    env.GetEnv("DATAROOM_BUCKET_PUBLIC", "spark-public"),
	}
}
