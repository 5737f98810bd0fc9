package dto

import (
	"time"

	"novelhub/internal/microservices/http-api/models"
)

// CreateChapterForm is the multipart body of POST /api/chapters; the optional
// audio file comes from the "audio_file" field.
type CreateChapterForm struct {
	NovelID       int64  `form:"novel_id" binding:"required,gt=0"`
	ChapterNumber int    `form:"chapter_number" binding:"required,min=1"`
	Title         string `form:"title" binding:"required,max=255"`
	ContentText   string `form:"content_text" binding:"required,min=1"`
	OrderIndex    int    `form:"order_index" binding:"required,min=1"`
}

// UpdateChapterForm is a partial update for POST /api/chapters/:id.
type UpdateChapterForm struct {
	NovelID       *int64  `form:"novel_id" binding:"omitempty,gt=0"`
	ChapterNumber *int    `form:"chapter_number" binding:"omitempty,min=1"`
	Title         *string `form:"title" binding:"omitempty,min=1,max=255"`
	ContentText   *string `form:"content_text" binding:"omitempty,min=1"`
	OrderIndex    *int    `form:"order_index" binding:"omitempty,min=1"`
}

type ChapterResponse struct {
	ID            int64     `json:"id"`
	NovelID       int64     `json:"novel_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	AudioURL      string    `json:"audio_url"`
	ContentText   string    `json:"content_text,omitempty"`
	OrderIndex    int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecentChapterResponse adds the owning novel's title for the "latest updates" feed.
type RecentChapterResponse struct {
	ChapterResponse
	NovelTitle string `json:"novel_title"`
}

func (f CreateChapterForm) ToModel(audioURL string) models.Chapter {
	return models.Chapter{
		NovelID:       f.NovelID,
		ChapterNumber: f.ChapterNumber,
		Title:         f.Title,
		AudioURL:      audioURL,
		ContentText:   f.ContentText,
		OrderIndex:    f.OrderIndex,
	}
}

func (f UpdateChapterForm) ApplyTo(ch *models.Chapter) {
	if f.NovelID != nil {
		ch.NovelID = *f.NovelID
	}
	if f.ChapterNumber != nil {
		ch.ChapterNumber = *f.ChapterNumber
	}
	if f.Title != nil {
		ch.Title = *f.Title
	}
	if f.ContentText != nil {
		ch.ContentText = *f.ContentText
	}
	if f.OrderIndex != nil {
		ch.OrderIndex = *f.OrderIndex
	}
}

func ChapterFromModel(ch models.Chapter) ChapterResponse {
	return ChapterResponse{
		ID:            ch.ID,
		NovelID:       ch.NovelID,
		ChapterNumber: ch.ChapterNumber,
		Title:         ch.Title,
		AudioURL:      ch.AudioURL,
		ContentText:   ch.ContentText,
		OrderIndex:    ch.OrderIndex,
		CreatedAt:     ch.CreatedAt,
		UpdatedAt:     ch.UpdatedAt,
	}
}

// ChapterSummaryFromModel leaves out the chapter body for list endpoints.
func ChapterSummaryFromModel(ch models.Chapter) ChapterResponse {
	resp := ChapterFromModel(ch)
	resp.ContentText = ""
	return resp
}

func RecentChapterFromModel(ch models.Chapter) RecentChapterResponse {
	resp := RecentChapterResponse{ChapterResponse: ChapterSummaryFromModel(ch)}
	if ch.Novel != nil {
		resp.NovelTitle = ch.Novel.Title
	}
	return resp
}
