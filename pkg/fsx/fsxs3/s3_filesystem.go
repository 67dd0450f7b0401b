package fsxs3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/folioforge/ats/pkg/fsx"
)

// S3FileSystem implements fsx.FileSystem on top of an S3 bucket
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates a file system rooted at bucket/prefix
func NewS3FileSystem(client *s3.Client, bucket, prefix string) fsx.FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (f *S3FileSystem) key(path string) string {
	path = strings.TrimPrefix(path, "/")
	if f.prefix == "" {
		return path
	}
	return f.prefix + "/" + path
}

func (f *S3FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body %s: %w", path, err)
	}
	return data, nil
}

func (f *S3FileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	if _, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
		Body:   r,
	}); err != nil {
		return fmt.Errorf("put object %s: %w", path, err)
	}
	return nil
}

func (f *S3FileSystem) DeleteFile(ctx context.Context, path string) error {
	if _, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}

func (f *S3FileSystem) Join(parts ...string) string {
	return strings.Join(parts, "/")
}
