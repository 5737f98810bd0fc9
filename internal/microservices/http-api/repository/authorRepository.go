package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db: db}
}

func (r *AuthorRepo) GetAll(ctx context.Context) ([]models.Author, error) {
	var list []models.Author
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get authors: %w", err)
	}
	return list, nil
}

func (r *AuthorRepo) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var a models.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FirstOrCreate returns the author with this exact name, creating it if needed.
func (r *AuthorRepo) FirstOrCreate(ctx context.Context, name string) (*models.Author, error) {
	a := models.Author{Name: name}
	if err := r.db.WithContext(ctx).Where(models.Author{Name: name}).FirstOrCreate(&a).Error; err != nil {
		return nil, fmt.Errorf("first or create author: %w", err)
	}
	return &a, nil
}
