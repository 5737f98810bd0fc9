package dto

import (
	"math"
	"time"

	"novelhub/internal/microservices/http-api/models"
)

// NovelStatsResponse is what readers see. AverageRating is rounded to one
// decimal place; the stored value is not.
type NovelStatsResponse struct {
	NovelID       int64      `json:"novel_id"`
	Title         string     `json:"title"`
	ChapterCount  int64      `json:"chapter_count"`
	ReaderCount   int64      `json:"reader_count"`
	AverageRating float64    `json:"average_rating"`
	RatingCount   int64      `json:"rating_count"`
	TotalViews    int64      `json:"total_views"`
	LastUpdated   *time.Time `json:"last_updated"`
}

// RoundRating rounds half away from zero to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

func StatsFromModel(s models.NovelStats) NovelStatsResponse {
	return NovelStatsResponse{
		NovelID:       s.NovelID,
		Title:         s.Title,
		ChapterCount:  s.ChapterCount,
		ReaderCount:   s.ReaderCount,
		AverageRating: RoundRating(s.AverageRating),
		RatingCount:   s.RatingCount,
		TotalViews:    s.TotalViews,
		LastUpdated:   s.LastUpdated,
	}
}
