package models

import "time"

const (
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
	StatusHiatus    = "hiatus"
)

// ValidStatuses lists the publication states a novel may be in.
var ValidStatuses = []string{StatusCompleted, StatusOngoing, StatusHiatus}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Novel struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title          string    `json:"title" gorm:"not null;size:255;index:novels_title_idx"`
	AuthorID       int64     `json:"author_id" gorm:"not null;index:novels_author_id_idx"`
	Publisher      string    `json:"publisher" gorm:"not null;size:255"`
	CoverImageURL  string    `json:"cover_image_url" gorm:"not null"`
	Synopsis       string    `json:"synopsis" gorm:"type:text;not null"`
	Status         string    `json:"status" gorm:"not null;default:'ongoing';index:novels_status_idx"`
	PublishingYear *int      `json:"publishing_year,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// associations
	Author   *Author        `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Genres   []Genre        `json:"genres,omitempty" gorm:"many2many:novel_genres;constraint:OnDelete:CASCADE;"`
	Chapters []Chapter      `json:"chapters,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
	Ratings  []NovelRating  `json:"ratings,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
	Featured *FeaturedNovel `json:"featured,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
}

func (Novel) TableName() string {
	return "novels"
}
