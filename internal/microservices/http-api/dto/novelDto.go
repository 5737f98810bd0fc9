package dto

import (
	"strings"
	"time"

	"novelhub/internal/microservices/http-api/models"
)

// CreateNovelForm is the multipart body of POST /api/novels. The cover image
// is read separately from the "cover_image" file field.
type CreateNovelForm struct {
	Title          string  `form:"title" binding:"required,max=255"`
	Author         string  `form:"author" binding:"required,max=255"`
	Publisher      string  `form:"publisher" binding:"required,max=255"`
	Synopsis       string  `form:"synopsis" binding:"required,min=10"`
	Status         string  `form:"status" binding:"required,novel_status"`
	PublishingYear int     `form:"publishing_year" binding:"required,publishing_year"`
	GenreIDs       []int64 `form:"genres"`
}

// UpdateNovelForm is the multipart body of POST /api/novels/:id; absent
// fields keep their current value. Genres are replaced only when sent.
type UpdateNovelForm struct {
	Title          *string `form:"title" binding:"omitempty,min=1,max=255"`
	Author         *string `form:"author" binding:"omitempty,min=1,max=255"`
	Publisher      *string `form:"publisher" binding:"omitempty,min=1,max=255"`
	Synopsis       *string `form:"synopsis" binding:"omitempty,min=10"`
	Status         *string `form:"status" binding:"omitempty,novel_status"`
	PublishingYear *int    `form:"publishing_year" binding:"omitempty,publishing_year"`
	GenreIDs       []int64 `form:"genres"`
}

// BulkDeleteRequest for DELETE /api/novels/bulk
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,dive,gt=0"`
}

// NovelBasicResponse is the list representation of a novel.
type NovelBasicResponse struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	AuthorID       int64           `json:"author_id"`
	AuthorName     string          `json:"author_name,omitempty"`
	CoverImageURL  string          `json:"cover_image_url"`
	Status         string          `json:"status"`
	PublishingYear *int            `json:"publishing_year,omitempty"`
	Genres         []GenreResponse `json:"genres"`
}

// NovelResponse is the full representation returned by detail and admin endpoints.
type NovelResponse struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Author         *AuthorResponse `json:"author,omitempty"`
	AuthorID       int64           `json:"author_id"`
	Publisher      string          `json:"publisher"`
	CoverImageURL  string          `json:"cover_image_url"`
	Synopsis       string          `json:"synopsis"`
	Status         string          `json:"status"`
	PublishingYear *int            `json:"publishing_year,omitempty"`
	Genres         []GenreResponse `json:"genres"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NovelDetailResponse pairs a novel with its stats snapshot.
type NovelDetailResponse struct {
	Data  NovelResponse      `json:"data"`
	Stats NovelStatsResponse `json:"stats"`
}

type PaginatedNovelResponse struct {
	Data       []NovelBasicResponse `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Converters
func (f CreateNovelForm) ToModel(authorID int64, coverURL string, genres []models.Genre) models.Novel {
	year := f.PublishingYear
	return models.Novel{
		Title:          strings.TrimSpace(f.Title),
		AuthorID:       authorID,
		Publisher:      strings.TrimSpace(f.Publisher),
		CoverImageURL:  coverURL,
		Synopsis:       f.Synopsis,
		Status:         f.Status,
		PublishingYear: &year,
		Genres:         genres,
	}
}

// ApplyTo copies the scalar fields that were sent onto n. Author is resolved
// by the caller.
func (f UpdateNovelForm) ApplyTo(n *models.Novel) {
	if f.Title != nil {
		n.Title = strings.TrimSpace(*f.Title)
	}
	if f.Publisher != nil {
		n.Publisher = strings.TrimSpace(*f.Publisher)
	}
	if f.Synopsis != nil {
		n.Synopsis = *f.Synopsis
	}
	if f.Status != nil {
		n.Status = *f.Status
	}
	if f.PublishingYear != nil {
		year := *f.PublishingYear
		n.PublishingYear = &year
	}
}

func FromModelToBasicResponse(n models.Novel) NovelBasicResponse {
	resp := NovelBasicResponse{
		ID:             n.ID,
		Title:          n.Title,
		AuthorID:       n.AuthorID,
		CoverImageURL:  n.CoverImageURL,
		Status:         n.Status,
		PublishingYear: n.PublishingYear,
		Genres:         GenresFromModels(n.Genres),
	}
	if n.Author != nil {
		resp.AuthorName = n.Author.Name
	}
	return resp
}

func FromModelsToBasicResponse(list []models.Novel) []NovelBasicResponse {
	resp := make([]NovelBasicResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, FromModelToBasicResponse(n))
	}
	return resp
}

func FromModelToNovelResponse(n models.Novel) NovelResponse {
	resp := NovelResponse{
		ID:             n.ID,
		Title:          n.Title,
		AuthorID:       n.AuthorID,
		Publisher:      n.Publisher,
		CoverImageURL:  n.CoverImageURL,
		Synopsis:       n.Synopsis,
		Status:         n.Status,
		PublishingYear: n.PublishingYear,
		Genres:         GenresFromModels(n.Genres),
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
	if n.Author != nil {
		a := AuthorFromModel(*n.Author)
		resp.Author = &a
	}
	return resp
}
