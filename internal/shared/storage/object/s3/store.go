package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"utilitycompare-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using Amazon S3.
type Store struct {
	client *s3.Client
	bucket string
	region string
}

// New creates a new S3-backed object store.
func New(ctx context.Context, region, bucket string) (object.ObjectStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Put uploads the reader contents under the given key.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	counter := &countingReader{r: r}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        counter,
		ContentType: aws.String(contentType),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", 0, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}

	location := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return location, counter.n, nil
}

// Fetch downloads a stored object into memory.
func (s *Store) Fetch(ctx context.Context, bucket string, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bucket == "" {
		bucket = s.bucket
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object bucket=%s key=%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read object bucket=%s key=%s: %w", bucket, key, err)
	}
	return data, nil
}

// Delete removes a stored object.
func (s *Store) Delete(ctx context.Context, bucket string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if bucket == "" {
		bucket = s.bucket
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", bucket, key, err)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

var _ object.ObjectStore = (*Store)(nil)
