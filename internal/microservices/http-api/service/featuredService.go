package service

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
)

type FeaturedService interface {
	GetAll(ctx context.Context) ([]models.FeaturedNovel, error)
	Create(ctx context.Context, req dto.CreateFeaturedRequest) (*models.FeaturedNovel, error)
	Delete(ctx context.Context, id int64) error
}

type featuredService struct {
	repo   *repository.FeaturedRepo
	novels *repository.NovelRepo
}

func NewFeaturedService(repo *repository.FeaturedRepo, novels *repository.NovelRepo) FeaturedService {
	return &featuredService{repo: repo, novels: novels}
}

func (s *featuredService) GetAll(ctx context.Context) ([]models.FeaturedNovel, error) {
	return s.repo.GetAll(ctx)
}

func (s *featuredService) Create(ctx context.Context, req dto.CreateFeaturedRequest) (*models.FeaturedNovel, error) {
	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}
	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", ErrInvalidInput, err)
	}
	if !start.Before(end) {
		return nil, ErrInvalidFeaturedWindow
	}

	exists, err := s.novels.Exists(ctx, req.NovelID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownNovel
	}

	f := &models.FeaturedNovel{
		NovelID:   req.NovelID,
		Position:  req.Position,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrPositionTaken
		}
		return nil, err
	}
	return f, nil
}

func (s *featuredService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrFeaturedNotFound
		}
		return err
	}
	return nil
}
