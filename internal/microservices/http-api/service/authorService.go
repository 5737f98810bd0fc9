package service

import (
	"context"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
)

type AuthorService interface {
	GetAll(ctx context.Context) ([]models.Author, error)
	GetByID(ctx context.Context, id int64) (*dto.AuthorDetailResponse, error)
}

type authorService struct {
	repo   *repository.AuthorRepo
	novels *repository.NovelRepo
}

func NewAuthorService(repo *repository.AuthorRepo, novels *repository.NovelRepo) AuthorService {
	return &authorService{repo: repo, novels: novels}
}

func (s *authorService) GetAll(ctx context.Context) ([]models.Author, error) {
	return s.repo.GetAll(ctx)
}

// GetByID returns the author together with the novels they wrote.
func (s *authorService) GetByID(ctx context.Context, id int64) (*dto.AuthorDetailResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	novels, err := s.novels.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.AuthorDetailResponse{
		AuthorResponse: dto.AuthorFromModel(*a),
		Novels:         dto.FromModelsToBasicResponse(novels),
	}, nil
}
