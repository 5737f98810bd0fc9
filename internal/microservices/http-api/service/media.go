package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"novelhub/internal/storage"

	"go.uber.org/zap"
)

// saveMedia stores fh and maps validation failures onto ErrInvalidMedia.
func saveMedia(ctx context.Context, store storage.Store, kind storage.Kind, fh *multipart.FileHeader) (string, error) {
	url, err := store.Save(ctx, kind, fh)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
			return "", fmt.Errorf("%w: %v", ErrInvalidMedia, err)
		}
		return "", fmt.Errorf("save %s: %w", kind.Folder, err)
	}
	return url, nil
}

// discardMedia deletes an uploaded file whose owning row is gone or was never
// written. Failures only leave an orphaned file, so they are logged.
func discardMedia(ctx context.Context, store storage.Store, url string) {
	if url == "" {
		return
	}
	if err := store.Delete(context.WithoutCancel(ctx), url); err != nil {
		zap.L().Warn("failed to delete media file", zap.String("url", url), zap.Error(err))
	}
}
