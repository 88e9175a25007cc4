package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/passkeep/passkeep/internal/vault"
)

// s3API is the slice of the S3 client the backend uses; a test double can
// stand in for the real client.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Backend keeps the collection as a single JSON object ("<namespace>.json")
// in a bucket. Works against AWS or any S3-compatible endpoint such as MinIO.
type S3Backend struct {
	client s3API
	bucket string
	key    string
}

// NewS3Backend builds the client from cfg. Static credentials are used when
// provided; otherwise the default AWS credential chain applies.
func NewS3Backend(ctx context.Context, cfg Config) (*S3Backend, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Backend{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Namespace + ".json",
	}, nil
}

func (b *S3Backend) Load(ctx context.Context) ([]vault.Plain, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return []vault.Plain{}, nil
		}
		return nil, fmt.Errorf("getting vault object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading vault object: %w", err)
	}

	var records []vault.Plain
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing vault object: %w", err)
	}
	if records == nil {
		records = []vault.Plain{}
	}
	return records, nil
}

func (b *S3Backend) SaveAll(ctx context.Context, records []vault.Plain) error {
	if records == nil {
		records = []vault.Plain{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding vault: %w", err)
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("putting vault object: %w", err)
	}
	return nil
}

func (b *S3Backend) Clear(ctx context.Context) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		return fmt.Errorf("deleting vault object: %w", err)
	}
	return nil
}
