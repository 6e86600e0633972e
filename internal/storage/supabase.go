package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStorage implements Storage for Supabase storage buckets
type SupabaseStorage struct {
	client  *storage_go.Client
	bucket  string
	baseURL string
}

// NewSupabaseStorage creates a new Supabase storage instance
func NewSupabaseStorage(cfg Config) (*SupabaseStorage, error) {
	if cfg.SupabaseURL == "" || cfg.ServiceKey == "" {
		return nil, fmt.Errorf("supabase url and service key are required")
	}

	baseURL := strings.TrimSuffix(cfg.SupabaseURL, "/")
	client := storage_go.NewClient(baseURL+"/storage/v1", cfg.ServiceKey, nil)

	return &SupabaseStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Save uploads a file to the Supabase bucket
func (s *SupabaseStorage) Save(ctx context.Context, filePath string, reader io.Reader, contentType string) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, filePath, reader, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to supabase: %w", err)
	}
	return nil
}

// Get retrieves a file from the Supabase bucket
func (s *SupabaseStorage) Get(ctx context.Context, filePath string) (io.ReadCloser, error) {
	data, err := s.client.DownloadFile(s.bucket, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download from supabase: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes a file from the Supabase bucket
func (s *SupabaseStorage) Delete(ctx context.Context, filePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{filePath})
	if err != nil {
		return fmt.Errorf("failed to delete from supabase: %w", err)
	}
	return nil
}

// Exists checks if a file exists in the Supabase bucket
func (s *SupabaseStorage) Exists(ctx context.Context, filePath string) (bool, error) {
	dir := path.Dir(filePath)
	if dir == "." {
		dir = ""
	}
	name := path.Base(filePath)

	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		files, err := s.client.ListFiles(s.bucket, dir, storage_go.FileSearchOptions{
			Limit:  pageSize,
			Offset: offset,
		})
		if err != nil {
			return false, fmt.Errorf("failed to list supabase files: %w", err)
		}
		for _, f := range files {
			if f.Name == name {
				return true, nil
			}
		}
		if len(files) < pageSize {
			return false, nil
		}
	}
}

// GetURL returns the public URL for the file
func (s *SupabaseStorage) GetURL(ctx context.Context, filePath string) (string, error) {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, filePath), nil
}

// GetSignedURL returns a temporary signed URL for private files
func (s *SupabaseStorage) GetSignedURL(ctx context.Context, filePath string, expiry time.Duration) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, filePath, int(expiry.Seconds()))
	if err != nil {
		return "", fmt.Errorf("failed to create signed url: %w", err)
	}
	return resp.SignedURL, nil
}
