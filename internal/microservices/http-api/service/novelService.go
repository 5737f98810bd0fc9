package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/storage"
)

type NovelService interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Novel, int64, error)
	GetDetail(ctx context.Context, raw string) (*dto.NovelDetailResponse, error)
	GetStats(ctx context.Context, raw string) (*dto.NovelStatsResponse, error)
	SearchByTitle(ctx context.Context, query string) ([]models.Novel, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Novel, error)
	ListByGenre(ctx context.Context, slug string) ([]models.Novel, error)
	RandomCompleted(ctx context.Context) (*models.Novel, error)

	Create(ctx context.Context, form dto.CreateNovelForm, cover *multipart.FileHeader) (*models.Novel, error)
	Update(ctx context.Context, id int64, form dto.UpdateNovelForm, cover *multipart.FileHeader) (*models.Novel, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
}

type novelService struct {
	repo     *repository.NovelRepo
	authors  *repository.AuthorRepo
	genres   *repository.GenreRepo
	chapters *repository.ChapterRepo
	resolver Resolver
	stats    StatsService
	media    storage.Store
}

func NewNovelService(
	repo *repository.NovelRepo,
	authors *repository.AuthorRepo,
	genres *repository.GenreRepo,
	chapters *repository.ChapterRepo,
	resolver Resolver,
	stats StatsService,
	media storage.Store,
) NovelService {
	return &novelService{
		repo:     repo,
		authors:  authors,
		genres:   genres,
		chapters: chapters,
		resolver: resolver,
		stats:    stats,
		media:    media,
	}
}

func (s *novelService) GetAll(ctx context.Context, page, pageSize int) ([]models.Novel, int64, error) {
	return s.repo.GetAll(ctx, page, pageSize)
}

// GetDetail resolves the novel by id or title and attaches its stats.
func (s *novelService) GetDetail(ctx context.Context, raw string) (*dto.NovelDetailResponse, error) {
	n, err := s.resolver.ResolveNovel(ctx, raw)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.GetOrDefault(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	return &dto.NovelDetailResponse{
		Data:  dto.FromModelToNovelResponse(*n),
		Stats: *stats,
	}, nil
}

func (s *novelService) GetStats(ctx context.Context, raw string) (*dto.NovelStatsResponse, error) {
	n, err := s.resolver.ResolveNovel(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.stats.GetOrDefault(ctx, n.ID)
}

// SearchByTitle with a blank query lists every novel.
func (s *novelService) SearchByTitle(ctx context.Context, query string) ([]models.Novel, error) {
	return s.repo.SearchByTitle(ctx, query)
}

func (s *novelService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Novel, error) {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *novelService) ListByGenre(ctx context.Context, slug string) ([]models.Novel, error) {
	if _, err := s.genres.GetBySlug(ctx, slug); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return s.repo.ListByGenreSlug(ctx, slug)
}

func (s *novelService) RandomCompleted(ctx context.Context) (*models.Novel, error) {
	n, err := s.repo.RandomCompleted(ctx)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: no completed novels", ErrNotFound)
		}
		return nil, err
	}
	return n, nil
}

// Create stores the cover first and removes it again if the novel row
// cannot be written.
func (s *novelService) Create(ctx context.Context, form dto.CreateNovelForm, cover *multipart.FileHeader) (*models.Novel, error) {
	if cover == nil {
		return nil, fmt.Errorf("%w: cover image is required", ErrInvalidMedia)
	}
	genres, err := s.loadGenres(ctx, form.GenreIDs)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, ErrGenresRequired
	}

	author, err := s.authors.FirstOrCreate(ctx, form.Author)
	if err != nil {
		return nil, err
	}

	coverURL, err := saveMedia(ctx, s.media, storage.Cover, cover)
	if err != nil {
		return nil, err
	}

	n := form.ToModel(author.ID, coverURL, genres)
	if err := s.repo.Create(ctx, &n); err != nil {
		discardMedia(ctx, s.media, coverURL)
		return nil, err
	}

	return s.repo.GetByID(ctx, n.ID)
}

// Update applies the sent fields. A new cover replaces the old one, which is
// deleted only after the row is saved.
func (s *novelService) Update(ctx context.Context, id int64, form dto.UpdateNovelForm, cover *multipart.FileHeader) (*models.Novel, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNovelNotFound
		}
		return nil, err
	}
	oldTitle := n.Title

	var genres []models.Genre
	if form.GenreIDs != nil {
		if genres, err = s.loadGenres(ctx, form.GenreIDs); err != nil {
			return nil, err
		}
		if len(genres) == 0 {
			return nil, ErrGenresRequired
		}
	}

	if form.Author != nil {
		author, err := s.authors.FirstOrCreate(ctx, *form.Author)
		if err != nil {
			return nil, err
		}
		n.AuthorID = author.ID
		n.Author = author
	}
	form.ApplyTo(n)

	oldCover := n.CoverImageURL
	var newCover string
	if cover != nil {
		if newCover, err = saveMedia(ctx, s.media, storage.Cover, cover); err != nil {
			return nil, err
		}
		n.CoverImageURL = newCover
	}

	if err := s.repo.Update(ctx, n, genres); err != nil {
		discardMedia(ctx, s.media, newCover)
		return nil, err
	}
	if newCover != "" {
		discardMedia(ctx, s.media, oldCover)
	}

	if n.Title != oldTitle {
		if _, err := s.stats.Refresh(ctx, n.ID); err != nil {
			return nil, fmt.Errorf("refresh stats after rename: %w", err)
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes the novel with its chapters, ratings and stats, then its files.
func (s *novelService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNovelNotFound
		}
		return err
	}
	chapters, err := s.chapters.ListByNovel(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNovelNotFound
		}
		return err
	}

	discardMedia(ctx, s.media, n.CoverImageURL)
	for _, ch := range chapters {
		discardMedia(ctx, s.media, ch.AudioURL)
	}
	return nil
}

// BulkDelete ignores ids that do not exist and reports how many were removed.
func (s *novelService) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	novels, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	audio, err := s.chapters.AudioURLsByNovels(ctx, ids)
	if err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	for _, n := range novels {
		discardMedia(ctx, s.media, n.CoverImageURL)
	}
	for _, url := range audio {
		discardMedia(ctx, s.media, url)
	}
	return deleted, nil
}

// loadGenres returns the genres for ids, failing if any id is unknown.
func (s *novelService) loadGenres(ctx context.Context, ids []int64) ([]models.Genre, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	genres, err := s.genres.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, ErrUnknownGenre
	}
	return genres, nil
}
