package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeaturedRepo struct {
	db *gorm.DB
}

func NewFeaturedRepo(db *gorm.DB) *FeaturedRepo {
	return &FeaturedRepo{db: db}
}

// GetAll returns the curated list in display order with each novel loaded.
func (r *FeaturedRepo) GetAll(ctx context.Context) ([]models.FeaturedNovel, error) {
	var list []models.FeaturedNovel
	if err := r.db.WithContext(ctx).
		Preload("Novel").
		Preload("Novel.Author").
		Order("position asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get featured novels: %w", err)
	}
	return list, nil
}

func (r *FeaturedRepo) Create(ctx context.Context, f *models.FeaturedNovel) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error; err != nil {
		return fmt.Errorf("create featured novel: %w", err)
	}
	return nil
}

func (r *FeaturedRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.FeaturedNovel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete featured novel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
