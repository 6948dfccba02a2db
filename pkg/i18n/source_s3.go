package i18n

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3GetObjectAPI is the subset of the S3 client used by S3Source.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config contains connection settings for an S3 (or S3-compatible) bucket.
type S3Config struct {
	Bucket         string `env:"LOCALES_S3_BUCKET"`
	Region         string `env:"LOCALES_S3_REGION" envDefault:"us-east-1"`
	Prefix         string `env:"LOCALES_S3_PREFIX" envDefault:"locales"`
	AccessKeyID    string `env:"LOCALES_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"LOCALES_S3_SECRET_KEY"`
	Endpoint       string `env:"LOCALES_S3_ENDPOINT"` // Optional: for S3-compatible services
	ForcePathStyle bool   `env:"LOCALES_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// NewS3Client builds an S3 client from cfg using the default AWS config chain.
// Static credentials are used when both key fields are set.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("bucket and region are required")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

// S3Source reads "<prefix>/<lang>/<namespace>.json" objects from a bucket.
type S3Source struct {
	client S3GetObjectAPI
	bucket string
	prefix string
	parser Parser
}

// NewS3Source creates a Source backed by an S3 bucket.
func NewS3Source(client S3GetObjectAPI, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
		parser: NewJSONParser(),
	}
}

func (s *S3Source) Fetch(ctx context.Context, lang string, ns Namespace) (Node, error) {
	if !ValidNamespace(ns) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, ns)
	}
	if !validLanguage(lang) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}

	key := path.Join(s.prefix, lang, string(ns)+".json")
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.mapError(err, key)
	}
	defer out.Body.Close()

	content, err := readDocument(out.Body)
	if err != nil {
		return nil, err
	}

	return s.parser.Parse(ctx, content)
}

func (s *S3Source) mapError(err error, key string) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: s3://%s/%s", ErrNamespaceNotFound, s.bucket, key)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: s3://%s/%s", ErrNamespaceNotFound, s.bucket, key)
		case "AccessDenied":
			return fmt.Errorf("%w: s3://%s/%s", ErrSourceAccessDenied, s.bucket, key)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrFetchCancelled, err)
	}
	return errors.Join(ErrFailedToRead, err)
}
