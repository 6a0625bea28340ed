package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client is the subset of object-storage operations the media flow
// needs: issue upload credentials, confirm an upload landed, and
// delete remote objects.
type Client interface {
	GenerateUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
	DeleteObject(ctx context.Context, key string) error
}

// S3Client wraps the AWS S3 client with presigned-URL helpers.
type S3Client struct {
	svc           *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// NewS3Client builds a Client against the given bucket. When endpoint is
// non-empty (local development against LocalStack/minio) it overrides
// the AWS endpoint and forces path-style addressing.
func NewS3Client(ctx context.Context, region, bucket, endpoint string) (*S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	svc := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Client{
		svc:           svc,
		presignClient: s3.NewPresignClient(svc),
		bucket:        bucket,
	}, nil
}

// GenerateUploadURL creates a presigned URL for uploading one object.
func (c *S3Client) GenerateUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignResult, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return presignResult.URL, nil
}

// ObjectExists checks whether the object landed in the bucket. Only a
// 404 means "missing"; any other HeadObject failure is a real error.
func (c *S3Client) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := c.svc.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteObject removes an object from the bucket.
func (c *S3Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}
