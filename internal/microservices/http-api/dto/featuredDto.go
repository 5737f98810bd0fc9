package dto

import (
	"time"

	"novelhub/internal/microservices/http-api/models"
)

// CreateFeaturedRequest for POST /api/featured-novels. Dates are parsed with ParseDate.
type CreateFeaturedRequest struct {
	NovelID   int64  `json:"novel_id" binding:"required,gt=0"`
	Position  int    `json:"position" binding:"required,min=1"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type FeaturedNovelResponse struct {
	ID        int64               `json:"id"`
	NovelID   int64               `json:"novel_id"`
	Position  int                 `json:"position"`
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Novel     *NovelBasicResponse `json:"novel,omitempty"`
}

func FeaturedFromModel(f models.FeaturedNovel) FeaturedNovelResponse {
	resp := FeaturedNovelResponse{
		ID:        f.ID,
		NovelID:   f.NovelID,
		Position:  f.Position,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
	if f.Novel != nil {
		n := FromModelToBasicResponse(*f.Novel)
		resp.Novel = &n
	}
	return resp
}
