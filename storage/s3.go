// Package storage issues presigned S3 URLs so clients upload product and
// order images directly, without routing bytes through this service.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/mohabnada13/nory/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = 15 * time.Minute

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type Presigner struct {
	cfg     config.AWSConfig
	presign *s3.PresignClient
}

// NewPresigner returns an error when the AWS settings are incomplete; the
// upload endpoint then reports the missing configuration instead of failing
// on the first request.
func NewPresigner(cfg config.AWSConfig) (*Presigner, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("AWS S3 is not configured. Set AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_REGION, AWS_BUCKET, AWS_BASE_PATH")
	}

	client := s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	})

	return &Presigner{cfg: cfg, presign: s3.NewPresignClient(client)}, nil
}

// ObjectKey builds the bucket key for an upload: base path, then a per-user
// prefix, then a timestamped sanitized file name.
func (p *Presigner) ObjectKey(userID int, fileName string, now time.Time) string {
	safeName := unsafeNameChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf("%s%d/%d_%s", p.cfg.BasePath, userID, now.UnixMilli(), safeName)
}

// PresignUpload returns a PUT URL for the upload and a GET URL for reading
// it back, both valid for 15 minutes.
func (p *Presigner) PresignUpload(ctx context.Context, key, contentType string) (uploadURL, getURL string, err error) {
	put, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", fmt.Errorf("presign put: %w", err)
	}

	get, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", fmt.Errorf("presign get: %w", err)
	}

	return put.URL, get.URL, nil
}

// PublicURL returns the direct object URL when the bucket is public-read,
// empty otherwise.
func (p *Presigner) PublicURL(key string) string {
	if !p.cfg.PublicRead {
		return ""
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, key)
}
