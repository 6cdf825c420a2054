// Package archive keeps a copy of every generated export in an S3-compatible
// bucket. Archiving is best effort: callers log failures and carry on.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/worklog/internal/server/access"
	sc "github.com/dmitrijs2005/worklog/internal/server/config"
	"github.com/google/uuid"
)

type Archiver interface {
	Store(ctx context.Context, key, contentType string, body []byte) error
}

// Noop discards everything. It is used when no bucket is configured.
type Noop struct{}

func (Noop) Store(context.Context, string, string, []byte) error { return nil }

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Archiver uploads objects with PutObject.
type S3Archiver struct {
	bucket string
	client objectPutter
}

// New returns an S3Archiver when cfg names a bucket and Noop otherwise.
func New(ctx context.Context, cfg *sc.Config) (Archiver, error) {
	if cfg.S3Bucket == "" {
		return Noop{}, nil
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("archive: aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{bucket: cfg.S3Bucket, client: client}, nil
}

func (a *S3Archiver) Store(ctx context.Context, key, contentType string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		Body:          bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("archive: put %s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// Key builds reports/<year>/<month>/<username>/<uuid>/<fileName>.
func Key(id access.Identity, year, month int, fileName string) string {
	return fmt.Sprintf("reports/%04d/%02d/%s/%s/%s",
		year, month, url.PathEscape(id.Username), uuid.NewString(), fileName)
}
