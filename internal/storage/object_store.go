package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tinytales/storefront/internal/config"
)

// AssetStore resolves product image keys to URLs. With an object-store
// endpoint configured it hands out presigned GET URLs; otherwise images are
// served from the static prefix.
type AssetStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewAssetStore(cfg config.StorageConfig) (*AssetStore, error) {
	cfg.StaticPrefix = strings.TrimRight(cfg.StaticPrefix, "/")
	if cfg.Endpoint == "" {
		return &AssetStore{cfg: cfg}, nil
	}

	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &AssetStore{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *AssetStore) Remote() bool {
	return s.client != nil
}

func (s *AssetStore) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

// URL returns where the browser should fetch key from.
func (s *AssetStore) URL(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return s.StaticURL(key), nil
	}

	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *AssetStore) StaticURL(key string) string {
	return s.cfg.StaticPrefix + "/" + url.PathEscape(key)
}
