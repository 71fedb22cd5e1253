package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/nutriware/nutrirag/internal/service"
)

// S3CorpusConfig holds configuration for an S3-hosted corpus
type S3CorpusConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string
	UsePathStyle    bool
}

// S3Corpus lists and downloads corpus PDFs from S3-compatible storage
// (e.g. MinIO, RustFS). Objects are downloaded to a scratch directory so
// the extractor can read them like local files.
type S3Corpus struct {
	client   *s3.Client
	bucket   string
	prefix   string
	cacheDir string
}

// NewS3Corpus creates a new S3Corpus with the given configuration
func NewS3Corpus(ctx context.Context, cfg S3CorpusConfig) (*S3Corpus, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.Endpoint != "" {
				return aws.Endpoint{
					URL:               cfg.Endpoint,
					HostnameImmutable: true,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		},
	)

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		config.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	cacheDir, err := os.MkdirTemp("", "nutrirag-corpus-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create corpus cache dir: %w", err)
	}

	return &S3Corpus{
		client:   client,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		cacheDir: cacheDir,
	}, nil
}

// ListDocuments lists the bucket's PDF objects and downloads each to the
// scratch directory, returning local paths for extraction.
func (c *S3Corpus) ListDocuments(ctx context.Context) ([]service.CorpusDocument, error) {
	var docs []service.CorpusDocument

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(c.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list corpus objects: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.EqualFold(path.Ext(key), ".pdf") {
				continue
			}

			localPath, err := c.download(ctx, key)
			if err != nil {
				return nil, err
			}
			docs = append(docs, service.CorpusDocument{
				Name: path.Base(key),
				Path: localPath,
			})
		}
	}

	return docs, nil
}

func (c *S3Corpus) download(ctx context.Context, key string) (string, error) {
	output, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer output.Body.Close()

	localPath := filepath.Join(c.cacheDir, path.Base(key))
	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, output.Body); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", key, err)
	}

	return localPath, nil
}

// Close removes the scratch directory.
func (c *S3Corpus) Close() error {
	return os.RemoveAll(c.cacheDir)
}
