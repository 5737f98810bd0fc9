package service

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map these to status codes; specific errors below
// wrap exactly one class so errors.Is works on both levels.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrStatsIntegrity = errors.New("stats integrity violation")
)

var (
	ErrEmptyIdentifier       = fmt.Errorf("%w: identifier is empty", ErrInvalidInput)
	ErrInvalidRating         = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	ErrUnknownNovel          = fmt.Errorf("%w: novel does not exist", ErrInvalidInput)
	ErrUnknownGenre          = fmt.Errorf("%w: one or more genres do not exist", ErrInvalidInput)
	ErrGenresRequired        = fmt.Errorf("%w: at least one genre is required", ErrInvalidInput)
	ErrInvalidFeaturedWindow = fmt.Errorf("%w: start date must be before end date", ErrInvalidInput)
	ErrInvalidRole           = fmt.Errorf("%w: role must be user or admin", ErrInvalidInput)
	ErrInvalidMedia          = fmt.Errorf("%w: unsupported media file", ErrInvalidInput)
	ErrPasswordMismatch      = fmt.Errorf("%w: password confirmation does not match", ErrInvalidInput)

	ErrNovelNotFound    = fmt.Errorf("%w: novel not found", ErrNotFound)
	ErrChapterNotFound  = fmt.Errorf("%w: chapter not found", ErrNotFound)
	ErrAuthorNotFound   = fmt.Errorf("%w: author not found", ErrNotFound)
	ErrFeaturedNotFound = fmt.Errorf("%w: featured novel not found", ErrNotFound)
	ErrRatingNotFound   = fmt.Errorf("%w: rating not found", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrGenreNotFound    = fmt.Errorf("%w: genre not found", ErrNotFound)

	ErrDuplicateChapter   = fmt.Errorf("%w: chapter number already exists for this novel", ErrConflict)
	ErrPositionTaken      = fmt.Errorf("%w: featured position already in use", ErrConflict)
	ErrNameInUse          = fmt.Errorf("%w: username already in use", ErrConflict)
	ErrEmailInUse         = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrRevokedToken       = fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
	ErrUnknownUser        = fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
)
