package service

import (
	"context"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
)

// UserService backs the admin user-management routes.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	ChangeRole(ctx context.Context, userID int64, role string) (*models.User, error)
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) ChangeRole(ctx context.Context, userID int64, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
