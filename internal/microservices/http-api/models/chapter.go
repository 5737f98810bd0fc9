package models

import "time"

// Chapter numbers are unique per novel; readers see chapters sorted by OrderIndex.
type Chapter struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID       int64     `json:"novel_id" gorm:"not null;uniqueIndex:idx_chapters_novel_number"`
	ChapterNumber int       `json:"chapter_number" gorm:"not null;uniqueIndex:idx_chapters_novel_number"`
	Title         string    `json:"title" gorm:"not null;size:255"`
	AudioURL      string    `json:"audio_url" gorm:"not null;default:''"`
	ContentText   string    `json:"content_text" gorm:"type:text;not null"`
	OrderIndex    int       `json:"order_index" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Novel *Novel `json:"novel,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
}

func (Chapter) TableName() string {
	return "chapters"
}
