// internal/catalog/source.go
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/spf13/afero"

	"github.com/javajoker/storefront-backend/internal/config"
)

// ErrTableNotFound is returned by sources when a catalog table does not exist.
var ErrTableNotFound = errors.New("catalog table not found")

// Source provides the raw catalog tables.
type Source interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	// Fingerprint changes whenever any of the named tables changes.
	Fingerprint(ctx context.Context, names []string) (string, error)
}

// DirSource reads tables from a directory.
type DirSource struct {
	fs afero.Fs
}

func NewDirSource(fs afero.Fs, dir string) *DirSource {
	return &DirSource{fs: afero.NewBasePathFs(fs, dir)}
}

func (s *DirSource) ReadFile(_ context.Context, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	return data, err
}

func (s *DirSource) Fingerprint(_ context.Context, names []string) (string, error) {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		info, err := s.fs.Stat(name)
		if errors.Is(err, os.ErrNotExist) {
			parts = append(parts, name+":-")
			continue
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", name, info.Size(), info.ModTime().UnixNano()))
	}
	return digest(parts), nil
}

// S3Source reads tables from an S3 bucket under an optional key prefix.
type S3Source struct {
	client s3iface.S3API
	bucket string
	prefix string
}

func NewS3Source(client s3iface.S3API, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// NewS3SourceFromConfig creates the AWS session the same way uploads did before:
// static credentials when configured, the default chain otherwise.
func NewS3SourceFromConfig(cfg *config.Config) (*S3Source, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.AWS.Region)}
	if cfg.AWS.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		)
	}
	if cfg.AWS.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWS.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3Source(s3.New(sess), cfg.Catalog.S3Bucket, cfg.Catalog.S3Prefix), nil
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Source) ReadFile(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrTableNotFound)
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, s.key(name), err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *S3Source) Fingerprint(ctx context.Context, names []string) (string, error) {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		out, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(name)),
		})
		if err != nil {
			if isS3NotFound(err) {
				parts = append(parts, name+":-")
				continue
			}
			return "", fmt.Errorf("failed to head s3://%s/%s: %w", s.bucket, s.key(name), err)
		}
		parts = append(parts, name+":"+aws.StringValue(out.ETag))
	}
	return digest(parts), nil
}

func isS3NotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return true
	}
	return false
}

func digest(parts []string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
