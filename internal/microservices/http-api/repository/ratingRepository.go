package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.NovelRating) error
	Delete(ctx context.Context, userID, novelID int64) error
	GetByUserAndNovel(ctx context.Context, userID, novelID int64) (*models.NovelRating, error)
	GetByNovel(ctx context.Context, novelID int64, page, pageSize int) ([]models.NovelRating, int64, error)
	Aggregate(ctx context.Context, novelID int64) (count int64, average float64, err error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or, when the user already rated the novel,
// overwrites the score in place. The (novel_id, user_id) unique index is the
// conflict target so concurrent writers never produce two rows.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.NovelRating) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "novel_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Delete a rating by user and novel
func (r *ratingRepository) Delete(ctx context.Context, userID, novelID int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND novel_id = ?", userID, novelID).Delete(&models.NovelRating{})
	if result.Error != nil {
		return fmt.Errorf("delete rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUserAndNovel retrieves a user's rating for a specific novel
func (r *ratingRepository) GetByUserAndNovel(ctx context.Context, userID, novelID int64) (*models.NovelRating, error) {
	var rating models.NovelRating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Preload("User").
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// GetByNovel retrieves all ratings for a specific novel with pagination
func (r *ratingRepository) GetByNovel(ctx context.Context, novelID int64, page, pageSize int) ([]models.NovelRating, int64, error) {
	var ratings []models.NovelRating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.NovelRating{}).Where("novel_id = ?", novelID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("novel_id = ?", novelID).
		Preload("User").
		Order("created_at desc").
		Order("id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}

	return ratings, total, nil
}

// Aggregate returns the number of ratings and their unrounded mean.
func (r *ratingRepository) Aggregate(ctx context.Context, novelID int64) (int64, float64, error) {
	var agg struct {
		Total   int64
		Average float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.NovelRating{}).
		Select("COUNT(*) AS total, COALESCE(CAST(AVG(rating) AS FLOAT), 0) AS average").
		Where("novel_id = ?", novelID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate ratings: %w", err)
	}

	return agg.Total, agg.Average, nil
}
