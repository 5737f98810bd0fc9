package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"novelhub/internal/config"
	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthClaims is the payload of every access token. The registered ID (jti)
// is what logout revokes.
type AuthClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenDenylist stores revoked token ids.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error)
	ValidateToken(ctx context.Context, tokenString string) (*AuthClaims, error)
	Logout(ctx context.Context, claims *AuthClaims) error
	CheckSession(ctx context.Context, userID int64) (*models.User, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo       repository.UserRepository
	denylist       TokenDenylist
	jwtSecret      []byte
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, denylist TokenDenylist, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		denylist:       denylist,
		jwtSecret:      []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

func (s *authService) TokenTTL() time.Duration {
	return s.accessTokenTTL
}

// Register creates a regular user account and signs them in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, string, error) {
	if req.Password != req.PasswordConfirmation {
		return nil, "", ErrPasswordMismatch
	}
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if err := s.ensureFree(ctx, username, email); err != nil {
		return nil, "", err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, "", err
	}

	now := s.now()
	user := &models.User{
		Username:     username,
		Email:        email,
		Password:     hashed,
		Role:         models.RoleUser,
		LastSignInAt: &now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if repository.IsDuplicate(err) {
			return nil, "", ErrNameInUse
		}
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return ErrNameInUse
	} else if !repository.IsNotFound(err) {
		return err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailInUse
	} else if !repository.IsNotFound(err) {
		return err
	}
	return nil
}

// Login authenticates by email and password and returns a fresh access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, "", err
		}
		// keep the miss as slow as a wrong password
		auth.BurnCompare(req.Password)
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.TouchSignIn(ctx, user.ID, now); err != nil {
		zap.L().Warn("failed to record sign in", zap.Int64("user_id", user.ID), zap.Error(err))
	} else {
		user.LastSignInAt = &now
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}

	// Role and username come from the account, not the token, so a demotion
	// or deletion applies to tokens already issued.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	claims.Username = user.Username
	claims.Role = user.Role
	return claims, nil
}

// Logout revokes the token until it would have expired on its own.
func (s *authService) Logout(ctx context.Context, claims *AuthClaims) error {
	if s.denylist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// CheckSession confirms the account behind a valid token still exists and
// records the activity.
func (s *authService) CheckSession(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now()
	if err := s.userRepo.TouchSignIn(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastSignInAt = &now
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
