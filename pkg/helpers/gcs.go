package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject uploads bytes from r into bucket/objectPath with the provided contentType
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(bucket, objectPath), nil
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// GCSAssets is the asset host: objects are addressed by their object path, which
// doubles as the opaque public id stored alongside the URL.
type GCSAssets struct {
	Client *storage.Client
	Bucket string
}

func NewGCSAssets(client *storage.Client, bucket string) *GCSAssets {
	return &GCSAssets{Client: client, Bucket: bucket}
}

var errGCSNotConfigured = errors.New("gcs not configured")

// Upload stores r under folder with a random name that keeps the original extension.
func (g *GCSAssets) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (publicID, url string, err error) {
	if g == nil || g.Client == nil || g.Bucket == "" {
		return "", "", errGCSNotConfigured
	}
	ext := strings.ToLower(filepath.Ext(filename))
	publicID = path.Join(folder, uuid.NewString()+ext)
	url, err = UploadObject(ctx, g.Client, g.Bucket, publicID, contentType, r)
	if err != nil {
		return "", "", err
	}
	return publicID, url, nil
}

// Delete removes the object. A missing object is not an error.
func (g *GCSAssets) Delete(ctx context.Context, publicID string) error {
	if g == nil || g.Client == nil || g.Bucket == "" {
		return errGCSNotConfigured
	}
	err := g.Client.Bucket(g.Bucket).Object(publicID).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
