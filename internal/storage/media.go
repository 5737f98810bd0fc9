// Package storage keeps uploaded cover images and chapter audio on local disk
// or in an S3 compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"novelhub/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("file type is not allowed")
)

// Kind describes one class of upload: where it lives and what it may contain.
type Kind struct {
	Folder   string
	MaxBytes int64
	Allowed  []string
}

var (
	Cover = Kind{
		Folder:   "novel_covers",
		MaxBytes: 2 << 20,
		Allowed:  []string{"image/jpeg", "image/png"},
	}
	Audio = Kind{
		Folder:   "chapter_audio",
		MaxBytes: 50 << 20,
		Allowed:  []string{"audio/mpeg", "audio/wav", "audio/ogg", "audio/opus"},
	}
)

// Store saves uploads and returns their public URL.
type Store interface {
	Save(ctx context.Context, kind Kind, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
}

// New picks the driver configured by MEDIA_DRIVER.
func New(cfg *config.Config) (Store, error) {
	switch cfg.MediaDriver {
	case "local":
		return NewLocalStore(cfg.MediaDataPath, cfg.MediaBaseURL)
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown media driver %q", cfg.MediaDriver)
	}
}

// upload is an opened, sniffed file ready to be written.
type upload struct {
	file        multipart.File
	contentType string
	key         string
}

// open validates fh against kind and rewinds it after sniffing. The caller
// must close the returned file.
func open(kind Kind, fh *multipart.FileHeader) (*upload, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > kind.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, fh.Size, kind.MaxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), kind.Allowed...) {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	return &upload{
		file:        f,
		contentType: mtype.String(),
		key:         path.Join(kind.Folder, objectName(mtype.Extension())),
	}, nil
}

// objectName is "<unix seconds>-<8 hex chars><ext>"; uploads within the same
// second never collide.
func objectName(ext string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.New().String()[:8], ext)
}

// keyFromURL strips base from url. ok is false for URLs this store did not issue.
func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if url == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(url, prefix))
	if key == "." || strings.HasPrefix(key, "..") || strings.HasPrefix(key, "/") {
		return "", false
	}
	return key, true
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
