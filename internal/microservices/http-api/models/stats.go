package models

import "time"

// NovelStats is a denormalized snapshot derived from chapters and novel_ratings.
// It can be rebuilt at any time and is only written by the stats service.
type NovelStats struct {
	NovelID       int64      `json:"novel_id" gorm:"primaryKey;autoIncrement:false"`
	Title         string     `json:"title" gorm:"not null"`
	ChapterCount  int64      `json:"chapter_count" gorm:"not null;default:0"`
	ReaderCount   int64      `json:"reader_count" gorm:"not null;default:0"`
	AverageRating float64    `json:"average_rating" gorm:"not null;default:0"`
	RatingCount   int64      `json:"rating_count" gorm:"not null;default:0"`
	TotalViews    int64      `json:"total_views" gorm:"not null;default:0"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`

	Novel *Novel `json:"-" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
}

func (NovelStats) TableName() string {
	return "novel_stats"
}
