package dto

import "novelhub/internal/microservices/http-api/models"

type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{
		ID:   g.ID,
		Name: g.Name,
		Slug: g.Slug,
	}
}

func GenresFromModels(list []models.Genre) []GenreResponse {
	resp := make([]GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, GenreFromModel(g))
	}
	return resp
}
