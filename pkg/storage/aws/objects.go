// File: pkg/storage/aws/objects.go
package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func (s *AWSStorage) ListBlobs(ctx context.Context, fn func(storage.Blob) error) error {
	s.logger.Debug("Starting AWS ListBlobs operation", "bucket", s.bucket)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: awssdk.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return s.opError("list", "", err)
		}

		for _, obj := range page.Contents {
			if err := fn(mapObject(obj, s.bucket)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *AWSStorage) Upload(ctx context.Context, name string, r io.Reader) error {
	s.logger.Debug("Starting AWS Upload operation", "bucket", s.bucket, "key", name)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(name),
		Body:   r,
	})
	if err != nil {
		return s.opError("upload", name, err)
	}
	return nil
}

func (s *AWSStorage) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	s.logger.Debug("Starting AWS Download operation", "bucket", s.bucket, "key", name)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(name),
	})
	if err != nil {
		return nil, s.opError("download", name, err)
	}
	return out.Body, nil
}

func (s *AWSStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(name),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, s.opError("exists", name, err)
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}

func (s *AWSStorage) opError(op, name string, err error) error {
	if isNotFound(err) {
		err = fmt.Errorf("%w: %w", storage.ErrBlobNotFound, err)
	}
	return storage.NewOpError(op, common.AWS, s.bucket, name, err)
}

func mapObject(obj types.Object, bucket string) storage.Blob {
	blob := storage.Blob{
		Name:         awssdk.ToString(obj.Key),
		Container:    bucket,
		Provider:     common.AWS,
		Size:         -1,
		LastModified: awssdk.ToTime(obj.LastModified),
		ETag:         awssdk.ToString(obj.ETag),
	}
	if obj.Size != nil {
		blob.Size = *obj.Size
	}
	return blob
}
