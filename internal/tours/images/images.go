// Package images turns package image references into URLs a browser can
// load.
package images

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Resolver maps an image reference to a browser URL.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Static serves absolute URLs unchanged and prefixes relative paths with an
// asset base URL.
type Static struct {
	BaseURL string
}

// Resolve implements Resolver.
func (s Static) Resolve(_ context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if isAbsolute(ref) {
		return ref, nil
	}
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if base == "" {
		return "/" + strings.TrimLeft(ref, "/"), nil
	}
	return base + "/" + strings.TrimLeft(ref, "/"), nil
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "//")
}

// ObjectRef is a parsed s3://bucket/key reference.
type ObjectRef struct {
	Bucket string
	Key    string
}

// ParseObjectRef parses an s3:// reference. ok is false for other schemes.
func ParseObjectRef(ref string) (ObjectRef, bool) {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil || parsed.Scheme != "s3" {
		return ObjectRef{}, false
	}
	key := strings.TrimLeft(parsed.Path, "/")
	if parsed.Host == "" || key == "" {
		return ObjectRef{}, false
	}
	return ObjectRef{Bucket: parsed.Host, Key: key}, true
}

// MinIOConfig holds the object store connection.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	Expiry    time.Duration
}

// Presigner is the subset of *minio.Client used to sign object URLs.
type Presigner interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// ObjectStore signs s3:// references and falls back to a Static resolver for
// everything else.
type ObjectStore struct {
	client   Presigner
	expiry   time.Duration
	fallback Resolver
}

const defaultExpiry = time.Hour

// NewObjectStore connects to MinIO. The region is required so signing never
// needs a bucket-location round trip.
func NewObjectStore(cfg MinIOConfig, fallback Resolver) (*ObjectStore, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return NewObjectStoreWithClient(client, cfg.Expiry, fallback), nil
}

// NewObjectStoreWithClient wraps an existing presigner.
func NewObjectStoreWithClient(client Presigner, expiry time.Duration, fallback Resolver) *ObjectStore {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	if fallback == nil {
		fallback = Static{}
	}
	return &ObjectStore{client: client, expiry: expiry, fallback: fallback}
}

// Resolve implements Resolver.
func (s *ObjectStore) Resolve(ctx context.Context, ref string) (string, error) {
	obj, ok := ParseObjectRef(ref)
	if !ok {
		return s.fallback.Resolve(ctx, ref)
	}
	signed, err := s.client.PresignedGetObject(ctx, obj.Bucket, obj.Key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", obj.Bucket, obj.Key, err)
	}
	return signed.String(), nil
}
