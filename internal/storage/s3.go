package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3ImageStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3ImageStore struct {
	client  S3API
	bucket  string
	prefix  string
	baseURL string
}

func NewS3ImageStore(client S3API, bucket, baseURL string) *S3ImageStore {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3ImageStore{
		client:  client,
		bucket:  bucket,
		prefix:  "employees/",
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *S3ImageStore) key(name string) string {
	return s.prefix + name
}

func (s *S3ImageStore) Save(ctx context.Context, name string, data []byte, contentType string) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 put %s: %w", name, err)
	}
	return nil
}

func (s *S3ImageStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 delete %s: %w", name, err)
	}
	return nil
}

func (s *S3ImageStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.baseURL + "/" + s.key(name)
}

type S3ClientConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the S3 endpoint (MinIO, LocalStack).
	Endpoint string
}

// NewS3Client loads the default AWS chain, preferring static keys when given.
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

var _ ImageStore = (*S3ImageStore)(nil)
