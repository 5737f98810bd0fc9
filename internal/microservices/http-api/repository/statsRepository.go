package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	Get(ctx context.Context, novelID int64) (*models.NovelStats, error)
	Upsert(ctx context.Context, stats *models.NovelStats) error
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context, novelID int64) (*models.NovelStats, error) {
	var s models.NovelStats
	if err := r.db.WithContext(ctx).Where("novel_id = ?", novelID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert writes the derived columns keyed by novel_id. reader_count and
// total_views are left untouched on update.
func (r *statsRepository) Upsert(ctx context.Context, stats *models.NovelStats) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "novel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "chapter_count", "average_rating", "rating_count", "last_updated",
			}),
		}).
		Create(stats).Error
	if err != nil {
		return fmt.Errorf("upsert novel stats: %w", err)
	}
	return nil
}
