package service

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/identifier"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// Resolver turns a URL identifier into a novel or chapter. Numeric identifiers
// are looked up by key, anything else by exact title.
type Resolver interface {
	ResolveNovel(ctx context.Context, raw string) (*models.Novel, error)
	ResolveChapter(ctx context.Context, novel *models.Novel, raw string) (*models.Chapter, error)
}

type resolver struct {
	novels   *repository.NovelRepo
	chapters *repository.ChapterRepo
}

func NewResolver(novels *repository.NovelRepo, chapters *repository.ChapterRepo) Resolver {
	return &resolver{novels: novels, chapters: chapters}
}

func (r *resolver) ResolveNovel(ctx context.Context, raw string) (*models.Novel, error) {
	id, err := identifier.Parse(raw)
	if err != nil {
		return nil, ErrEmptyIdentifier
	}

	var n *models.Novel
	if id.IsNumeric() {
		n, err = r.novels.GetByID(ctx, id.ID)
	} else {
		n, err = firstByTitle(ctx, id, func(title string) (*models.Novel, error) {
			return r.novels.GetByTitle(ctx, title)
		})
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNovelNotFound
		}
		return nil, fmt.Errorf("resolve novel %s: %w", id, err)
	}
	return n, nil
}

// ResolveChapter only ever searches inside novel. A numeric identifier
// matches either the chapter's key or its chapter number, key first.
func (r *resolver) ResolveChapter(ctx context.Context, novel *models.Novel, raw string) (*models.Chapter, error) {
	id, err := identifier.Parse(raw)
	if err != nil {
		return nil, ErrEmptyIdentifier
	}

	var ch *models.Chapter
	if id.IsNumeric() {
		ch, err = r.chapters.FindByNumber(ctx, novel.ID, id.ID)
	} else {
		ch, err = firstByTitle(ctx, id, func(title string) (*models.Chapter, error) {
			return r.chapters.FindByTitle(ctx, novel.ID, title)
		})
	}
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("resolve chapter %s: %w", id, err)
	}
	return ch, nil
}

// firstByTitle tries each title candidate of id until one matches. Only a
// miss moves on to the next candidate.
func firstByTitle[T any](ctx context.Context, id identifier.Identifier, find func(title string) (*T, error)) (*T, error) {
	err := gorm.ErrRecordNotFound
	for _, title := range id.Candidates() {
		var v *T
		v, err = find(title)
		if err == nil {
			return v, nil
		}
		if !repository.IsNotFound(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, err
}
