package router

import (
	"context"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"
	"novelhub/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the long-lived resources the API runs on.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Denylist service.TokenDenylist
	Media    storage.Store
}

// Build wires repositories, services and handlers on top of deps and
// returns the ready engine.
func Build(deps Deps) *gin.Engine {
	db := deps.DB

	users := repository.NewUserRepository(db)
	authors := repository.NewAuthorRepo(db)
	genres := repository.NewGenreRepo(db)
	novels := repository.NewNovelRepo(db)
	chapters := repository.NewChapterRepo(db)
	ratings := repository.NewRatingRepository(db)
	stats := repository.NewStatsRepository(db)
	featured := repository.NewFeaturedRepo(db)

	resolver := service.NewResolver(novels, chapters)
	statsService := service.NewStatsService(stats, novels, chapters, ratings)
	authService := service.NewAuthService(users, deps.Denylist, deps.Config)

	h := Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserHandler(service.NewUserService(users)),
		Authors:  handler.NewAuthorHandler(service.NewAuthorService(authors, novels)),
		Genres:   handler.NewGenreHandler(service.NewGenreService(genres)),
		Novels:   handler.NewNovelHandler(service.NewNovelService(novels, authors, genres, chapters, resolver, statsService, deps.Media)),
		Chapters: handler.NewChapterHandler(service.NewChapterService(chapters, novels, resolver, statsService, deps.Media)),
		Featured: handler.NewFeaturedHandler(service.NewFeaturedService(featured, novels)),
		Ratings:  handler.NewRatingHandler(service.NewRatingService(ratings, novels, statsService)),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
	}

	opts := Options{
		Config:      deps.Config,
		Logger:      deps.Logger,
		AuthService: authService,
	}
	if local, ok := deps.Media.(*storage.LocalStore); ok {
		opts.MediaRoot = local.Root()
	}
	return New(opts, h)
}
