package persistent

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pixelshop/backend/pkg/s3client"
)

const _defaultContentType = "image/jpeg"

// AssetRepo reads master originals. Writes happen through catalog tooling,
// not through this service.
type AssetRepo struct {
	*s3client.S3Client
	bucket string
}

func NewAssetRepo(s3c *s3client.S3Client, bucket string) *AssetRepo {
	return &AssetRepo{s3c, bucket}
}

func (r *AssetRepo) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("AssetRepo - Download - r.Client.GetObject: %w", err)
	}

	return result.Body, contentTypeOf(result), nil
}

func (r *AssetRepo) DownloadBytes(ctx context.Context, key string) ([]byte, string, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("AssetRepo - DownloadBytes - r.Client.GetObject: %w", err)
	}
	defer result.Body.Close()

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, "", fmt.Errorf("AssetRepo - DownloadBytes - io.ReadAll: %w", err)
	}

	return b, contentTypeOf(result), nil
}

func contentTypeOf(out *s3.GetObjectOutput) string {
	if out.ContentType != nil && *out.ContentType != "" {
		return *out.ContentType
	}
	return _defaultContentType
}
