// Package storage resolves documents kept in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	DefaultRegion  = "auto"
	defaultRetries = 3
)

// Options configures a Bucket
type Options struct {
	Bucket    string
	Endpoint  string // custom endpoint for R2, MinIO and other S3-compatible stores
	Region    string
	AccessKey string // empty uses the default AWS credential chain
	SecretKey string
	Prefix    string
}

// ObjectGetter is the subset of the S3 client used by Bucket
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Bucket is a DocumentLookup over an object storage bucket.
//
// Objects live under <prefix>/resumes/<id> and <prefix>/jobs/<id>. The
// document format comes from the id's extension, else the object content type.
type Bucket struct {
	client  ObjectGetter
	bucket  string
	prefix  string
	retries int
	backoff time.Duration
	logger  *slog.Logger
}

// New builds an S3 client from opts and wraps it in a Bucket
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Bucket, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewBucket(client, opts.Bucket, opts.Prefix, logger), nil
}

// NewBucket wraps an existing client
func NewBucket(client ObjectGetter, bucket, prefix string, logger *slog.Logger) *Bucket {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bucket{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		retries: defaultRetries,
		backoff: 500 * time.Millisecond,
		logger:  logger,
	}
}

// ObjectKey returns the key a document with the given role and id is stored under
func (b *Bucket) ObjectKey(role types.DocumentRole, id string) string {
	dir := "resumes"
	if role == types.RoleJobDescription {
		dir = "jobs"
	}
	return path.Join(b.prefix, dir, id)
}

// LookupDocument downloads the document and extracts its text. A missing
// object or a malformed id resolves to an empty string.
func (b *Bucket) LookupDocument(ctx context.Context, role types.DocumentRole, id string) (string, error) {
	if !validID(id) {
		return "", nil
	}
	key := b.ObjectKey(role, id)

	var obj *object
	err := b.retry(ctx, func() error {
		var err error
		obj, err = b.download(ctx, key)
		return err
	})
	if err != nil {
		return "", err
	}
	if obj == nil {
		b.logger.Debug("storage: object not found", "bucket", b.bucket, "key", key)
		return "", nil
	}

	format, err := documentFormat(id, obj.contentType)
	if err != nil {
		return "", err
	}
	text, err := ingestion.Extract(format, obj.data)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", key, err)
	}
	return text, nil
}

type object struct {
	data        []byte
	contentType string
}

// download returns a nil object when the key does not exist
func (b *Bucket) download(ctx context.Context, key string) (*object, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return &object{data: buf.Bytes(), contentType: aws.ToString(out.ContentType)}, nil
}

// retry retries fn with linear backoff, stopping early when ctx is done
func (b *Bucket) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < b.retries; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		b.logger.Warn("storage: download failed", "attempt", i+1, "error", lastErr)
		if i == b.retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.backoff * time.Duration(i+1)):
		}
	}
	return fmt.Errorf("after %d attempts: %w", b.retries, lastErr)
}

func documentFormat(id, contentType string) (ingestion.Format, error) {
	if filepath.Ext(id) != "" {
		return ingestion.FormatFromPath(id)
	}
	if contentType == "" || contentType == "binary/octet-stream" || contentType == "application/octet-stream" {
		return ingestion.FormatText, nil
	}
	return ingestion.FormatFromContentType(contentType)
}

func validID(id string) bool {
	if id == "" || strings.HasPrefix(id, "/") {
		return false
	}
	for _, part := range strings.Split(id, "/") {
		if part == ".." || part == "." || part == "" {
			return false
		}
	}
	return true
}
