package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/filegate/storage"
)

// Compile-time check that Storage implements the storage.Storage interface.
var _ storage.Storage = (*Storage)(nil)

// Client defines the S3 operations used by Storage.
// Narrowed for testability with mock clients.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3aws.ListObjectsV2Input, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
	CopyObject(ctx context.Context, params *s3aws.CopyObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// Config contains configuration for S3 storage.
// Fields carry env tags so it can be populated with the config package.
type Config struct {
	Bucket         string `env:"FILEGATE_S3_BUCKET,required"`
	Region         string `env:"FILEGATE_S3_REGION,required"`
	AccessKeyID    string `env:"FILEGATE_S3_ACCESS_KEY_ID"` // Optional - falls back to IAM roles
	SecretKey      string `env:"FILEGATE_S3_SECRET_KEY"`
	Endpoint       string `env:"FILEGATE_S3_ENDPOINT"`         // For S3-compatible services like MinIO, Wasabi
	ForcePathStyle bool   `env:"FILEGATE_S3_FORCE_PATH_STYLE"` // Required for MinIO and some S3-compatible services
}

// Storage implements the storage capability over Amazon S3 and S3-compatible
// services. Directories are simulated with key prefixes; MkdirAll is a no-op.
type Storage struct {
	client        Client
	bucket        string
	uploadTimeout time.Duration
}

// Option configures Storage construction.
type Option func(*options)

type options struct {
	httpClient    *http.Client
	client        Client
	configOptions []func(*config.LoadOptions) error
	uploadTimeout time.Duration
}

// WithClient sets a custom pre-configured S3 client.
// Primarily used for testing with mocks.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithUploadTimeout bounds individual write operations.
// If not set, writes rely on the caller's context deadline.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.uploadTimeout = timeout
	}
}

// New creates an S3 storage backend.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, storage.ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		// Static credentials if provided, IAM roles/env vars otherwise
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}

		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &Storage{
		client:        client,
		bucket:        cfg.Bucket,
		uploadTimeout: o.uploadTimeout,
	}, nil
}

// key maps a resolved slash path to an S3 object key.
func key(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// Stat returns metadata for the object at path.
func (s *Storage) Stat(ctx context.Context, p string) (storage.FileInfo, error) {
	k := key(p)
	out, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return storage.FileInfo{}, classify(err, "stat")
	}

	info := storage.FileInfo{Name: path.Base(k)}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	if out.LastModified != nil {
		info.CreatedAt = *out.LastModified
	}
	return info, nil
}

// List enumerates the immediate children of the given key prefix.
// A prefix with no objects yields storage.ErrNotExist, matching the local
// backend's behavior for a missing directory.
func (s *Storage) List(ctx context.Context, p string) ([]storage.FileInfo, error) {
	prefix := key(p)
	if prefix != "" {
		prefix += "/"
	}

	// Delimiter restricts results to immediate children
	out, err := s.client.ListObjectsV2(ctx, &s3aws.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return nil, classify(err, "list")
	}

	if len(out.Contents) == 0 && len(out.CommonPrefixes) == 0 {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotExist, p)
	}

	entries := make([]storage.FileInfo, 0, len(out.Contents)+len(out.CommonPrefixes))

	for _, cp := range out.CommonPrefixes {
		name := strings.TrimSuffix(strings.TrimPrefix(*cp.Prefix, prefix), "/")
		entries = append(entries, storage.FileInfo{Name: name, IsDir: true})
	}

	for _, obj := range out.Contents {
		if *obj.Key == prefix {
			continue // directory marker
		}
		name := strings.TrimPrefix(*obj.Key, prefix)
		if strings.Contains(name, "/") {
			continue
		}
		info := storage.FileInfo{Name: name}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.CreatedAt = *obj.LastModified
		}
		entries = append(entries, info)
	}

	return entries, nil
}

// Read opens the object at path for reading.
func (s *Storage) Read(ctx context.Context, p string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(p)),
	})
	if err != nil {
		return nil, classify(err, "read")
	}
	return out.Body, nil
}

// Write stores data at path, fully replacing any existing object.
func (s *Storage) Write(ctx context.Context, p string, data []byte) error {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	_, err := s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(p)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return classify(err, "write")
	}
	return nil
}

// Rename moves the object at oldpath to newpath via copy and delete.
// S3 has no native rename; the copy is atomic per object, the delete is not,
// so a failure between the two leaves both keys present.
func (s *Storage) Rename(ctx context.Context, oldpath, newpath string) error {
	src := key(oldpath)
	dst := key(newpath)

	_, err := s.client.CopyObject(ctx, &s3aws.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(url.PathEscape(s.bucket + "/" + src)),
		Key:        aws.String(dst),
	})
	if err != nil {
		return classify(err, "rename")
	}

	_, err = s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(src),
	})
	if err != nil {
		return classify(err, "rename")
	}
	return nil
}

// Delete removes the object at path.
// Verifies existence first: DeleteObject succeeds on missing keys, but the
// handler expects a not-exist signal for consistency with the local backend.
func (s *Storage) Delete(ctx context.Context, p string) error {
	k := key(p)

	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	}); err != nil {
		return classify(err, "delete")
	}

	if _, err := s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	}); err != nil {
		return classify(err, "delete")
	}
	return nil
}

// MkdirAll is a no-op: object keys need no directory creation.
func (s *Storage) MkdirAll(ctx context.Context, p string) error {
	return nil
}
