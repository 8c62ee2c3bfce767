// Package storage wraps S3 object uploads for post images, profile pictures
// and identity verification photos.
package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/maeul-dev/maeul-backend/internal/config"
)

// Key prefixes by upload kind.
const (
	PostImagePrefix         = "post_image/"
	ProfilePicturePrefix    = "profile_image/"
	VerificationPhotoPrefix = "verification_photo/"
)

const basenameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Client is a thin S3 wrapper producing public object URLs.
type Client struct {
	s3     *s3.Client
	bucket string
	region string
}

func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		s3:     s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// Upload stores body under key and returns the public object URL.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return c.URL(key), nil
}

// Delete removes the object under key.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL for an object key.
func (c *Client) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// KeyFromURL recovers the object key from a public URL produced by URL.
func KeyFromURL(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, "https://")
	if !ok {
		return "", false
	}
	host, key, ok := strings.Cut(rest, "/")
	if !ok || key == "" || !strings.Contains(host, ".s3.") {
		return "", false
	}
	return key, true
}

// RandomBasename returns a 32-character alphanumeric object basename.
func RandomBasename() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = basenameChars[int(b)%len(basenameChars)]
	}
	return string(buf)
}
