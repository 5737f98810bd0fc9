package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/workerpool"

	"go.uber.org/zap"
)

// rebuildWorkers bounds the concurrent refreshes of RebuildAll.
const rebuildWorkers = 4

// StatsService owns novel_stats. Refresh is the only code path that writes it;
// every rating and chapter mutation calls Refresh afterwards.
type StatsService interface {
	GetOrDefault(ctx context.Context, novelID int64) (*dto.NovelStatsResponse, error)
	Refresh(ctx context.Context, novelID int64) (*models.NovelStats, error)
	RebuildAll(ctx context.Context) (int, error)
}

type statsService struct {
	stats    repository.StatsRepository
	novels   *repository.NovelRepo
	chapters *repository.ChapterRepo
	ratings  repository.RatingRepository
}

func NewStatsService(
	stats repository.StatsRepository,
	novels *repository.NovelRepo,
	chapters *repository.ChapterRepo,
	ratings repository.RatingRepository,
) StatsService {
	return &statsService{stats: stats, novels: novels, chapters: chapters, ratings: ratings}
}

// GetOrDefault never reports missing stats. Without a stored row it builds a
// zero snapshot in memory from the novel's title and live chapter count.
func (s *statsService) GetOrDefault(ctx context.Context, novelID int64) (*dto.NovelStatsResponse, error) {
	row, err := s.stats.Get(ctx, novelID)
	if err == nil {
		resp := dto.StatsFromModel(*row)
		return &resp, nil
	}
	if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("get novel stats: %w", err)
	}

	var title string
	n, err := s.novels.GetByID(ctx, novelID)
	switch {
	case err == nil:
		title = n.Title
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("get novel for default stats: %w", err)
	}

	chapterCount, err := s.chapters.CountByNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}

	return &dto.NovelStatsResponse{
		NovelID:      novelID,
		Title:        title,
		ChapterCount: chapterCount,
	}, nil
}

// Refresh recomputes the derived columns from chapters and novel_ratings and
// upserts the row. The stored average is not rounded.
func (s *statsService) Refresh(ctx context.Context, novelID int64) (*models.NovelStats, error) {
	n, err := s.novels.GetByID(ctx, novelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: novel %d does not exist", ErrStatsIntegrity, novelID)
		}
		return nil, fmt.Errorf("load novel for stats: %w", err)
	}

	ratingCount, average, err := s.ratings.Aggregate(ctx, novelID)
	if err != nil {
		return nil, err
	}
	chapterCount, err := s.chapters.CountByNovel(ctx, novelID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &models.NovelStats{
		NovelID:       novelID,
		Title:         n.Title,
		ChapterCount:  chapterCount,
		AverageRating: average,
		RatingCount:   ratingCount,
		LastUpdated:   &now,
	}
	if err := s.stats.Upsert(ctx, row); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: novel %d was removed during refresh", ErrStatsIntegrity, novelID)
		}
		return nil, err
	}

	zap.L().Debug("novel stats refreshed",
		zap.Int64("novel_id", novelID),
		zap.Int64("rating_count", ratingCount),
		zap.Float64("average_rating", average),
		zap.Int64("chapter_count", chapterCount),
	)
	return row, nil
}

// RebuildAll refreshes every novel on rebuildWorkers goroutines and returns
// how many rows were written. The first failure stops the rebuild.
func (s *statsService) RebuildAll(ctx context.Context) (int, error) {
	ids, err := s.novels.AllIDs(ctx)
	if err != nil {
		return 0, err
	}

	pool := workerpool.New(ctx, rebuildWorkers)
	var written atomic.Int64
	for _, id := range ids {
		ok := pool.Submit(func(ctx context.Context) error {
			if _, err := s.Refresh(ctx, id); err != nil {
				return fmt.Errorf("refresh novel %d: %w", id, err)
			}
			written.Add(1)
			return nil
		})
		if !ok {
			break
		}
	}
	err = pool.Wait()
	return int(written.Load()), err
}
