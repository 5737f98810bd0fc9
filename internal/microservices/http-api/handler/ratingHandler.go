package handler

import (
	"context"
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/middleware"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers the public rating listing
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/:novel_id", h.List)
}

// RegisterAuthRoutes registers routes that act on the caller's own rating
func (h *RatingHandler) RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("", h.Upsert)
	router.GET("/:novel_id/me", h.GetUserRating)
	router.DELETE("/:novel_id", h.Delete)
}

// Upsert creates or replaces the caller's rating for a novel
// POST /api/novel-ratings
func (h *RatingHandler) Upsert(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.RateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rating, err := h.ratingService.Upsert(ctx, userID, req.NovelID, req.Rating)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "rating saved successfully",
		"data":    rating,
	})
}

// GetUserRating retrieves the current user's rating for a novel
// GET /api/novel-ratings/:novel_id/me
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	novelID, ok := paramID(c, "novel_id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	rating, err := h.ratingService.GetUserRating(ctx, userID, novelID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// Delete removes the current user's rating for a novel
// DELETE /api/novel-ratings/:novel_id
func (h *RatingHandler) Delete(c *gin.Context) {
	novelID, ok := paramID(c, "novel_id")
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.ratingService.Delete(ctx, userID, novelID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted successfully"})
}

// List retrieves all ratings for a novel with pagination
// GET /api/novel-ratings/:novel_id?page=1&page_size=20
func (h *RatingHandler) List(c *gin.Context) {
	novelID, ok := paramID(c, "novel_id")
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	page, pageSize := q.Normalize()

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ratings, err := h.ratingService.ListByNovel(ctx, novelID, page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}
