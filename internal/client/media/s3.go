package media

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Zhanerrke588595/it-events/internal/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Options locate the bucket that receives event images. A non-empty
// BaseEndpoint selects path-style addressing, as MinIO expects.
type S3Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Preparer uploads images and returns their object URL.
type S3Preparer struct {
	opts S3Options
	log  logging.Logger

	now    func() time.Time
	newKey func() string
}

func NewS3Preparer(opts S3Options, log logging.Logger) *S3Preparer {
	return &S3Preparer{
		opts:   opts,
		log:    log,
		now:    time.Now,
		newKey: uuid.NewString,
	}
}

// New returns an S3Preparer when opts names a bucket and a
// DataURLPreparer otherwise.
func New(opts S3Options, log logging.Logger) Preparer {
	if opts.Bucket == "" {
		return DataURLPreparer{}
	}
	return NewS3Preparer(opts, log)
}

func (p *S3Preparer) client(ctx context.Context) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(p.opts.Region)}
	if p.opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.opts.AccessKey, p.opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if p.opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// objectKey is events/<yyyy>/<mm>/<dd>/<uuid><ext>.
func (p *S3Preparer) objectKey(ext string) string {
	return fmt.Sprintf("events/%s/%s%s", p.now().UTC().Format("2006/01/02"), p.newKey(), ext)
}

// ObjectURL is the public URL of key in the configured bucket.
func (p *S3Preparer) ObjectURL(key string) string {
	if p.opts.BaseEndpoint != "" {
		u, err := url.JoinPath(p.opts.BaseEndpoint, p.opts.Bucket, key)
		if err == nil {
			return u
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.opts.Bucket, p.opts.Region, strings.TrimPrefix(key, "/"))
}

func (p *S3Preparer) Prepare(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	img, err := readImage(path)
	if err != nil {
		return "", err
	}

	c, err := p.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	key := p.objectKey(img.ext)
	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.data),
		ContentType:   aws.String(img.contentType),
		ContentLength: aws.Int64(int64(len(img.data))),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	p.log.Debug(ctx, "image uploaded", "bucket", p.opts.Bucket, "key", key, "size", len(img.data))
	return p.ObjectURL(key), nil
}
