package dto

import (
	"time"

	"novelhub/internal/microservices/http-api/models"
)

// RateNovelRequest for POST /api/novel-ratings. Range checks live in the
// rating service so every caller gets the same error.
type RateNovelRequest struct {
	NovelID int64 `json:"novel_id" binding:"required"`
	Rating  int   `json:"rating" binding:"required"`
}

// RatingResponse is the stored rating row.
type RatingResponse struct {
	ID        int64     `json:"id"`
	NovelID   int64     `json:"novel_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a NovelRating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.NovelRating) *RatingResponse {
	resp := &RatingResponse{
		ID:        rating.ID,
		NovelID:   rating.NovelID,
		UserID:    rating.UserID,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	if rating.User != nil {
		resp.Username = rating.User.Username
	}
	return resp
}

// UserRatingResponse for returning user's own rating
type UserRatingResponse struct {
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginatedRatingResponse for returning paginated ratings
type PaginatedRatingResponse struct {
	Data       []RatingResponse `json:"data"`
	Pagination Pagination       `json:"pagination"`
}
