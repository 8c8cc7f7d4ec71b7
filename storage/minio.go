package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore uploads meal images to an S3 compatible bucket and hands
// back a URL the frontend can render.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageStore connects to endpoint and checks that bucket exists.
// publicURL is the base the object URL is built from; when empty the
// endpoint itself is used.
func NewImageStore(ctx context.Context, endpoint, accessKey, secretKey, bucket, publicURL string) (*ImageStore, error) {
	host, secure, err := normaliseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket does not exist: %s", bucket)
	}

	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}
	return &ImageStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// PutImage stores r under a fresh object name below prefix and returns its URL.
func (s *ImageStore) PutImage(ctx context.Context, prefix, filename, contentType string, r io.Reader, size int64) (string, error) {
	object := ObjectName(prefix, filename)
	_, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", object, err)
	}
	return s.publicURL + "/" + s.bucket + "/" + object, nil
}

// ObjectName keeps the extension of filename and replaces the rest with a
// random id so that uploads never overwrite each other.
func ObjectName(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}

func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	// Accept either "minio:9000" or "http://minio:9000" / "https://minio:9000".
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, false, nil
}
