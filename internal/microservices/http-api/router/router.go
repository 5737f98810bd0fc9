// Package router assembles the gin engine for the API server.
package router

import (
	"net/http"
	"time"

	"novelhub/internal/config"
	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadMemory caps the part of a multipart body gin keeps in memory; the
// rest spills to temp files.
const maxUploadMemory = 32 << 20

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Authors  *handler.AuthorHandler
	Genres   *handler.GenreHandler
	Novels   *handler.NovelHandler
	Chapters *handler.ChapterHandler
	Featured *handler.FeaturedHandler
	Ratings  *handler.RatingHandler
	Health   *handler.HealthHandler
}

// Options are the non-handler inputs of New.
type Options struct {
	Config      *config.Config
	Logger      *zap.Logger
	AuthService service.AuthService
	// MediaRoot is served under /media when uploads live on local disk.
	MediaRoot string
}

// New builds the engine with every API route registered.
func New(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.Deadline(cfg.RequestTimeout))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/check-conn", h.Health.CheckConn)
	if opts.MediaRoot != "" {
		r.Static("/media", opts.MediaRoot)
	}

	api := r.Group("/api")

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	h.Auth.RegisterRoutes(api, middleware.RateLimit(limiter))

	// public catalog
	novels := api.Group("/novels")
	h.Genres.RegisterRoutes(novels)
	h.Novels.RegisterRoutes(novels)
	h.Chapters.RegisterRoutes(api.Group("/chapters"))
	h.Authors.RegisterRoutes(api.Group("/authors"))
	h.Featured.RegisterRoutes(api.Group("/featured-novels"))
	h.Ratings.RegisterRoutes(api.Group("/novel-ratings"))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(opts.AuthService))
	h.Auth.RegisterSessionRoutes(authed)
	h.Ratings.RegisterAuthRoutes(authed.Group("/novel-ratings"))

	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())
	h.Users.RegisterRoutes(admin)
	h.Novels.RegisterAdminRoutes(admin.Group("/novels"))
	h.Chapters.RegisterAdminRoutes(admin.Group("/chapters"))
	h.Featured.RegisterAdminRoutes(admin.Group("/featured-novels"))

	return r
}
