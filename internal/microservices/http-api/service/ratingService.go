package service

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"

	"go.uber.org/zap"
)

type RatingService interface {
	Upsert(ctx context.Context, userID, novelID int64, rating int) (*dto.RatingResponse, error)
	Delete(ctx context.Context, userID, novelID int64) error
	GetUserRating(ctx context.Context, userID, novelID int64) (*dto.UserRatingResponse, error)
	ListByNovel(ctx context.Context, novelID int64, page, pageSize int) (*dto.PaginatedRatingResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	novelRepo  *repository.NovelRepo
	stats      StatsService
}

func NewRatingService(ratingRepo repository.RatingRepository, novelRepo *repository.NovelRepo, stats StatsService) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		novelRepo:  novelRepo,
		stats:      stats,
	}
}

// Upsert stores the user's rating for the novel, replacing any earlier one,
// then refreshes the novel's stats before returning. Invalid input is
// rejected before anything is written.
func (s *ratingService) Upsert(ctx context.Context, userID, novelID int64, value int) (*dto.RatingResponse, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, ErrInvalidRating
	}

	exists, err := s.novelRepo.Exists(ctx, novelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownNovel
	}

	rating := &models.NovelRating{
		NovelID: novelID,
		UserID:  userID,
		Rating:  value,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, s.missingReference(ctx, novelID)
		}
		return nil, err
	}

	if err := s.refresh(ctx, novelID, "rating upsert"); err != nil {
		return nil, err
	}

	// Reload so id and timestamps reflect the stored row on both insert and update
	stored, err := s.ratingRepo.GetByUserAndNovel(ctx, userID, novelID)
	if err != nil {
		return nil, fmt.Errorf("reload rating: %w", err)
	}
	return dto.FromModelToRatingResponse(stored), nil
}

// missingReference decides which side of a rejected rating insert is gone.
// The novel was checked before the write, so it is usually the user.
func (s *ratingService) missingReference(ctx context.Context, novelID int64) error {
	exists, err := s.novelRepo.Exists(ctx, novelID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownNovel
	}
	return ErrUnknownUser
}

// Delete removes the user's rating and refreshes the novel's stats.
func (s *ratingService) Delete(ctx context.Context, userID, novelID int64) error {
	if err := s.ratingRepo.Delete(ctx, userID, novelID); err != nil {
		if repository.IsNotFound(err) {
			return ErrRatingNotFound
		}
		return err
	}
	return s.refresh(ctx, novelID, "rating delete")
}

// GetUserRating retrieves a user's rating for a specific novel
func (s *ratingService) GetUserRating(ctx context.Context, userID, novelID int64) (*dto.UserRatingResponse, error) {
	rating, err := s.ratingRepo.GetByUserAndNovel(ctx, userID, novelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	return &dto.UserRatingResponse{
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}, nil
}

// ListByNovel retrieves all ratings for a novel with pagination
func (s *ratingService) ListByNovel(ctx context.Context, novelID int64, page, pageSize int) (*dto.PaginatedRatingResponse, error) {
	exists, err := s.novelRepo.Exists(ctx, novelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNovelNotFound
	}

	ratings, total, err := s.ratingRepo.GetByNovel(ctx, novelID, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		data = append(data, *dto.FromModelToRatingResponse(&ratings[i]))
	}

	return &dto.PaginatedRatingResponse{
		Data:       data,
		Pagination: dto.NewPagination(total, page, pageSize),
	}, nil
}

// refresh logs and returns a stats failure; the rating write itself stays.
func (s *ratingService) refresh(ctx context.Context, novelID int64, cause string) error {
	if _, err := s.stats.Refresh(ctx, novelID); err != nil {
		zap.L().Error("stats refresh failed",
			zap.String("cause", cause),
			zap.Int64("novel_id", novelID),
			zap.Error(err),
		)
		return fmt.Errorf("refresh stats after %s: %w", cause, err)
	}
	return nil
}
