package service

import (
	"context"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
)

type GenreService interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	SeedDefaults(ctx context.Context) (int64, error)
}

type genreService struct {
	repo *repository.GenreRepo
}

func NewGenreService(r *repository.GenreRepo) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	return s.repo.GetAll(ctx)
}

// SeedDefaults inserts the built-in catalog genres. Slugs already present are
// left untouched, so running it twice is harmless.
func (s *genreService) SeedDefaults(ctx context.Context) (int64, error) {
	return s.repo.Seed(ctx, DefaultGenres())
}

type genreSeed struct {
	name, slug, description string
}

var defaultGenres = []genreSeed{
	{"Action", "action", "Fast-paced stories driven by fights and adventure"},
	{"Romance", "romance", "Stories centered on love and relationships"},
	{"Fantasy", "fantasy", "Magic, mythical creatures and epic quests"},
	{"Science Fiction", "sci-fi", "Future technology, space and speculative science"},
	{"Mystery", "mystery", "Detectives, puzzles and hidden truths"},
	{"Horror", "horror", "Stories written to frighten"},
	{"Historical", "historical", "Stories set in past eras"},
	{"Comedy", "comedy", "Humorous stories"},
	{"Drama", "drama", "Character-driven stories with emotional weight"},
	{"Literary", "literary", "Literary fiction focused on character and style"},
	{"Thriller", "thriller", "Suspense that keeps the reader on edge"},
	{"Adventure", "adventure", "Journeys and exploration"},
	{"Contemporary", "contemporary", "Stories set in the present day"},
	{"Urban Fantasy", "urban-fantasy", "Fantasy in modern cities"},
	{"Young Adult", "young-adult", "Written for teenage and young adult readers"},
	{"Harem", "harem", "Several romantic interests around one protagonist"},
	{"Adult", "adult", "Mature content for adult readers"},
	{"Cultivation", "cultivation", "Martial arts and spiritual cultivation"},
	{"Game", "game", "Stories set in or around games"},
	{"System", "system", "Progression driven by a game-like system"},
	{"Reincarnation", "reincarnation", "Characters reborn into a new life"},
	{"Ecchi", "ecchi", "Mild adult themes and fan service"},
	{"Hentai", "hentai", "Explicit adult content"},
	{"Dark", "dark", "Dark themes and mature content"},
	{"Gore", "gore", "Graphic violence"},
	{"Other", "other", "Stories outside the other categories"},
	{"Slice of Life", "slice-of-life", "Everyday life and personal growth"},
	{"Isekai", "isekai", "Characters transported to another world"},
	{"Fanfiction", "fanfiction", "Stories built on existing works"},
	{"Anime / Comic", "anime-comic", "Adapted from or inspired by anime and comics"},
	{"Tragedy", "tragedy", "Sorrowful and dramatic stories"},
	{"War", "war", "Military conflict and its aftermath"},
}

// DefaultGenres returns a fresh copy of the built-in genre list.
func DefaultGenres() []models.Genre {
	out := make([]models.Genre, 0, len(defaultGenres))
	for _, g := range defaultGenres {
		desc := g.description
		out = append(out, models.Genre{Name: g.name, Slug: g.slug, Description: &desc})
	}
	return out
}
