package models

import "time"

type FeaturedNovel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID   int64     `json:"novel_id" gorm:"not null;index"`
	Position  int       `json:"position" gorm:"not null;uniqueIndex"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Novel *Novel `json:"novel,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
}

func (FeaturedNovel) TableName() string {
	return "featured_novels"
}
