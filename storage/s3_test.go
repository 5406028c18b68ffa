package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mohabnada13/nory/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAWSConfig() config.AWSConfig {
	return config.AWSConfig{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "eu-west-1",
		Bucket:          "nory-uploads",
		BasePath:        "Nor/",
		PublicRead:      true,
	}
}

func TestNewPresigner_Unconfigured(t *testing.T) {
	_, err := NewPresigner(config.AWSConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPresigner_ObjectKey(t *testing.T) {
	p, err := NewPresigner(testAWSConfig())
	require.NoError(t, err)

	now := time.UnixMilli(1700000000000)
	key := p.ObjectKey(42, "my photo (1).png", now)

	assert.Equal(t, "Nor/42/1700000000000_my_photo__1_.png", key)
}

func TestPresigner_PresignUpload(t *testing.T) {
	p, err := NewPresigner(testAWSConfig())
	require.NoError(t, err)

	uploadURL, getURL, err := p.PresignUpload(context.Background(), "Nor/42/1_cake.png", "image/png")
	require.NoError(t, err)

	// SigV4 presigning is local: no network round-trip happens here.
	assert.Contains(t, uploadURL, "nory-uploads")
	assert.Contains(t, uploadURL, "X-Amz-Signature=")
	assert.Contains(t, getURL, "X-Amz-Signature=")
	assert.NotEqual(t, uploadURL, getURL)
}

func TestPresigner_PublicURL(t *testing.T) {
	p, err := NewPresigner(testAWSConfig())
	require.NoError(t, err)

	url := p.PublicURL("Nor/42/1_cake.png")
	assert.True(t, strings.HasPrefix(url, "https://nory-uploads.s3.eu-west-1.amazonaws.com/"))

	cfg := testAWSConfig()
	cfg.PublicRead = false
	private, err := NewPresigner(cfg)
	require.NoError(t, err)
	assert.Empty(t, private.PublicURL("Nor/42/1_cake.png"))
}
