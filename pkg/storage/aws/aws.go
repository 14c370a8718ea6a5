// File: pkg/storage/aws/aws.go
package aws

import (
	"context"
	"fmt"
	"log/slog"
	"stowblob/internal/config"
	"stowblob/internal/provider/registry"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultRegion = "us-east-1"

func init() {
	registry.Register("aws", registry.Registration{
		Provider:    common.AWS,
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// storage.account carries the access key id and storage.key the secret access key
func isConfigured(cfg *config.StorageConfig) bool {
	return cfg.Account != "" && cfg.Key != "" && cfg.Container != ""
}

func initialize(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("AWS configuration missing or incomplete")
	}
	return NewAWSStorage(ctx, cfg.Account, cfg.Key, cfg.Container, cfg.Region, cfg.Endpoint, logger)
}

// The subset of the S3 client used here
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type AWSStorage struct {
	client   s3API
	uploader uploader
	bucket   string
	region   string
	logger   *slog.Logger
}

var _ storage.Storage = (*AWSStorage)(nil)

// Builds an S3 client with static credentials. A custom endpoint switches to path-style addressing
func NewAWSStorage(ctx context.Context, accessKeyID, secretKey, bucket, region, endpoint string, logger *slog.Logger) (*AWSStorage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretKey, "")),
	}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = defaultRegion
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = awssdk.String(endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Debug("AWS S3 client created", "accessKeyID", accessKeyID, "region", awsCfg.Region, "bucket", bucket)

	return &AWSStorage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   awsCfg.Region,
		logger:   logger,
	}, nil
}

func (s *AWSStorage) ProviderName() common.Provider {
	return common.AWS
}

func (s *AWSStorage) Close() error {
	return nil
}
