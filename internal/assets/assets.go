// Package assets builds download links for the gated guides offered through
// the lead-capture flow. Guides live in S3 and are handed out as short-lived
// presigned URLs, or under a static base URL when no bucket is configured.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tbourn/go-intake-backend/internal/config"
)

var (
	// ErrInvalidMagnetType is returned for magnet types that cannot name a file.
	ErrInvalidMagnetType = errors.New("invalid magnet type")
	// ErrNoGuideSource is returned when neither a bucket nor a base URL is set.
	ErrNoGuideSource = errors.New("no guide source configured")
)

var magnetRE = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Linker returns a download URL for the guide identified by magnetType.
type Linker interface {
	Link(ctx context.Context, magnetType string) (string, error)
}

// S3Linker presigns GET requests for <Prefix>/<magnetType>.pdf in Bucket.
type S3Linker struct {
	Client *s3.PresignClient
	Bucket string
	Prefix string
	TTL    time.Duration
}

// Link presigns the guide object. Nothing is fetched from S3.
func (l *S3Linker) Link(ctx context.Context, magnetType string) (string, error) {
	key, err := objectKey(l.Prefix, magnetType)
	if err != nil {
		return "", err
	}
	req, err := l.Client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(l.Bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
	}, s3.WithPresignExpires(l.TTL))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// StaticLinker serves guides from BaseURL/<magnetType>.pdf.
type StaticLinker struct {
	BaseURL string
}

// Link joins the base URL and the guide file name.
func (l StaticLinker) Link(_ context.Context, magnetType string) (string, error) {
	if strings.TrimSpace(l.BaseURL) == "" {
		return "", ErrNoGuideSource
	}
	if !magnetRE.MatchString(magnetType) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMagnetType, magnetType)
	}
	return url.JoinPath(l.BaseURL, magnetType+".pdf")
}

// New selects the linker for cfg: S3 when a bucket is set, otherwise the
// static base URL. With neither, the returned linker always fails with
// ErrNoGuideSource and guide emails go out without a link.
func New(ctx context.Context, cfg config.GuideConfig) (Linker, error) {
	if cfg.Bucket == "" {
		return StaticLinker{BaseURL: cfg.BaseURL}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Linker(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3Linker wraps client in a presigning linker.
func NewS3Linker(client *s3.Client, cfg config.GuideConfig) *S3Linker {
	ttl := cfg.LinkTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &S3Linker{
		Client: s3.NewPresignClient(client),
		Bucket: cfg.Bucket,
		Prefix: cfg.Prefix,
		TTL:    ttl,
	}
}

func objectKey(prefix, magnetType string) (string, error) {
	if !magnetRE.MatchString(magnetType) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMagnetType, magnetType)
	}
	name := magnetType + ".pdf"
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name, nil
	}
	return prefix + "/" + name, nil
}
