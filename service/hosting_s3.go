package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tee-factory/models"
)

// S3Hosting uploads design files to an S3 bucket under date-partitioned
// keys and serves them through the bucket's public URL.
// Implements HostingProvider.
type S3Hosting struct {
	client *s3.Client
	bucket string
	region string
}

// Ensure S3Hosting implements HostingProvider
var _ HostingProvider = (*S3Hosting)(nil)

// NewS3Hosting creates the S3 hosting provider. Static credentials are used
// when provided; otherwise the default chain (CI role, shared config) applies.
func NewS3Hosting(ctx context.Context, bucket, region, accessKey, secretKey string) (*S3Hosting, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: S3_BUCKET_NAME is not set", models.ErrConfig)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Hosting{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

// Name returns the provider identifier.
func (h *S3Hosting) Name() string { return "s3" }

// Host uploads the file under designs/YYYYMMDD/<filename> and returns the
// public object URL. Network failures are transient: the caller's retry
// policy applies.
func (h *S3Hosting) Host(ctx context.Context, localPath, filename string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open design file: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("designs/%s/%s", time.Now().UTC().Format("20060102"), filename)
	contentType := "image/png"

	_, err = h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &models.TransientError{Err: fmt.Errorf("s3 upload failed: %w", err)}
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.bucket, h.region, key)
	log.Printf("☁️  Uploaded to S3: %s", url)
	return url, nil
}
