package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	reviewerURLTTL = 2 * time.Hour
	standardURLTTL = 15 * time.Minute
)

// DocumentRequest names one stored document to expose.
type DocumentRequest struct {
	Key    string
	Name   string
	Bucket string // empty means the secure bucket
}

// DocumentURL is a time-limited link to one document.
type DocumentURL struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Presigner issues time-limited GET URLs for data-room documents.
type Presigner struct {
	presign *s3.PresignClient
	cfg     *Config
}

// NewPresigner builds the S3 presigning client. Static credentials from the
// environment take precedence; otherwise the default chain applies.
func NewPresigner(cfg *Config) (*Presigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return &Presigner{presign: s3.NewPresignClient(client), cfg: cfg}, nil
}

// DocumentAccessURL presigns a GET for one object.
func (p *Presigner) DocumentAccessURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

// BatchGenerateURLs presigns a set of documents. Reviewers get longer-lived
// links. A presign failure degrades to an unsigned bucket URL so the listing
// never fails wholesale.
func (p *Presigner) BatchGenerateURLs(ctx context.Context, items []DocumentRequest, reviewer bool) []DocumentURL {
	ttl := standardURLTTL
	if reviewer {
		ttl = reviewerURLTTL
	}

	out := make([]DocumentURL, 0, len(items))
	for _, item := range items {
		bucket := item.Bucket
		if bucket == "" {
			bucket = p.cfg.SecureBucket
		}
		name := item.Name
		if name == "" {
			name = item.Key
		}

		url, err := p.DocumentAccessURL(ctx, bucket, item.Key, ttl)
		if err != nil {
			log.Printf("presign failed for %s/%s: %v", bucket, item.Key, err)
			url = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, item.Key)
		}
		out = append(out, DocumentURL{Name: name, URL: url})
	}
	return out
}
