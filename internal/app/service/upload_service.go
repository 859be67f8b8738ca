package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"staynest/internal/common"
	"staynest/internal/platform/blob"

	"github.com/google/uuid"
)

type UploadService struct {
	store       blob.Store
	maxFiles    int
	maxFileSize int64
	retries     int
}

func NewUploadService(store blob.Store, maxFiles, maxFileSizeMB, retries int) *UploadService {
	return &UploadService{
		store:       store,
		maxFiles:    maxFiles,
		maxFileSize: int64(maxFileSizeMB) << 20,
		retries:     retries,
	}
}

type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Upload stores one file under a random key and returns its public URL.
// Keys are UUID-based rather than timestamp-based so concurrent uploads in
// the same instant cannot collide. Transient blob store failures are retried
// a bounded number of times with backoff.
func (s *UploadService) Upload(ctx context.Context, f UploadFile) (string, error) {
	if len(f.Data) == 0 {
		return "", fmt.Errorf("file %q is empty: %w", f.Name, common.ErrValidation)
	}
	if int64(len(f.Data)) > s.maxFileSize {
		return "", fmt.Errorf("file %q exceeds %d bytes: %w", f.Name, s.maxFileSize, common.ErrValidation)
	}

	key := uuid.NewString() + filepath.Ext(f.Name)

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}
		url, err := s.store.Put(ctx, key, f.Data, f.ContentType)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("upload %q failed after %d attempts: %v: %w",
		f.Name, s.retries+1, lastErr, common.ErrUpstream)
}

// UploadMany uploads sequentially and fails on the first error. Files already
// committed to the blob store are not rolled back; callers get the error and
// none of the URLs.
func (s *UploadService) UploadMany(ctx context.Context, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided: %w", common.ErrValidation)
	}
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("at most %d files per upload: %w", s.maxFiles, common.ErrValidation)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.Upload(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
