package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// NovelRating holds one user's score for one novel; (novel_id, user_id) is unique.
type NovelRating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID   int64     `json:"novel_id" gorm:"not null;uniqueIndex:idx_novel_ratings_novel_user;index"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_novel_ratings_novel_user;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (NovelRating) TableName() string {
	return "novel_ratings"
}
