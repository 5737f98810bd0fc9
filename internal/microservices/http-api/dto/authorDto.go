package dto

import "novelhub/internal/microservices/http-api/models"

type AuthorResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// AuthorDetailResponse is returned by GET /authors/:id with the author's novels.
type AuthorDetailResponse struct {
	AuthorResponse
	Novels []NovelBasicResponse `json:"novels"`
}

func AuthorFromModel(a models.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		AvatarURL: a.AvatarURL,
	}
}
