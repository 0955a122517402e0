package source

import (
	"context"
	"errors"
	"fmt"

	"catalog-import/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// ObjectGetter is the subset of the S3 client used by the loader.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for workbook objects stored in AWS S3.
type s3Loader struct {
	client   ObjectGetter
	bucket   string
	maxBytes int64
	logger   zerolog.Logger
}

// NewS3Loader creates a new S3-based workbook loader using the default AWS
// credential chain.
func NewS3Loader(ctx context.Context, bucket, region string, maxBytes int64, logger zerolog.Logger) (Loader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 loader initialised")

	return NewS3LoaderWithClient(s3.NewFromConfig(cfg), bucket, maxBytes, logger), nil
}

// NewS3LoaderWithClient creates an S3 loader around an existing client.
func NewS3LoaderWithClient(client ObjectGetter, bucket string, maxBytes int64, logger zerolog.Logger) Loader {
	return &s3Loader{
		client:   client,
		bucket:   bucket,
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "s3-loader").Logger(),
	}
}

// Load reads a workbook object from S3. The key is the full object key.
func (l *s3Loader) Load(ctx context.Context, key string) ([]byte, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading workbook from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, l.getObjectError(key, err)
	}
	defer result.Body.Close()

	// Reject early when S3 reports the size up front.
	if size := aws.ToInt64(result.ContentLength); l.maxBytes > 0 && size > l.maxBytes {
		l.logger.Warn().
			Str("key", key).
			Int64("size", size).
			Int64("max_bytes", l.maxBytes).
			Msg("S3 object exceeds size limit")
		return nil, fmt.Errorf("%w: object %s is %d bytes", model.ErrSourceTooLarge, key, size)
	}

	return l.read(ctx, key, result)
}

func (l *s3Loader) read(ctx context.Context, key string, result *s3.GetObjectOutput) ([]byte, error) {
	data, err := readAll(ctx, result.Body, l.maxBytes)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("error reading workbook from S3")
		return nil, fmt.Errorf("error reading workbook from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("workbook loaded successfully from S3")

	return data, nil
}

func (l *s3Loader) getObjectError(key string, err error) error {
	l.logger.Error().
		Err(err).
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("failed to get object from S3")

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w: %w", l.bucket, key, model.ErrSourceNotFound, err)
	}
	return fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
}
