package service

import (
	"testing"

	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/storage"
	"novelhub/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db       *gorm.DB
	media    *storage.LocalStore
	novels   *repository.NovelRepo
	chapters *repository.ChapterRepo
	genres   *repository.GenreRepo
	authors  *repository.AuthorRepo
	featured *repository.FeaturedRepo
	ratings  repository.RatingRepository
	users    repository.UserRepository

	resolver   Resolver
	stats      StatsService
	ratingSvc  RatingService
	novelSvc   NovelService
	chapterSvc ChapterService
}

const testMediaURL = "http://localhost:8080/media"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	media, err := storage.NewLocalStore(t.TempDir(), testMediaURL)
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		media:    media,
		novels:   repository.NewNovelRepo(db),
		chapters: repository.NewChapterRepo(db),
		genres:   repository.NewGenreRepo(db),
		authors:  repository.NewAuthorRepo(db),
		featured: repository.NewFeaturedRepo(db),
		ratings:  repository.NewRatingRepository(db),
		users:    repository.NewUserRepository(db),
	}
	env.resolver = NewResolver(env.novels, env.chapters)
	env.stats = NewStatsService(repository.NewStatsRepository(db), env.novels, env.chapters, env.ratings)
	env.ratingSvc = NewRatingService(env.ratings, env.novels, env.stats)
	env.novelSvc = NewNovelService(env.novels, env.authors, env.genres, env.chapters, env.resolver, env.stats, media)
	env.chapterSvc = NewChapterService(env.chapters, env.novels, env.resolver, env.stats, media)
	return env
}
