package command

import (
	"bytes"
	"context"
	"testing"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"
	"novelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedGenres(t *testing.T) {
	db := testutil.NewDB(t)
	svc := service.NewGenreService(repository.NewGenreRepo(db))
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, seedGenres(ctx, &out, svc))
	assert.Contains(t, out.String(), "Inserted")

	out.Reset()
	require.NoError(t, seedGenres(ctx, &out, svc))
	assert.Equal(t, "Default genres already present.\n", out.String())

	var count int64
	require.NoError(t, db.Model(&models.Genre{}).Count(&count).Error)
	assert.Equal(t, int64(len(service.DefaultGenres())), count)
}

func TestRebuildStats(t *testing.T) {
	db := testutil.NewDB(t)
	novel := testutil.SeedNovel(t, db, "Lord of the Mysteries")
	testutil.SeedChapter(t, db, novel.ID, 1, "Crimson")
	testutil.SeedChapter(t, db, novel.ID, 2, "Situation")
	testutil.SeedNovel(t, db, "Circle of Inevitability")

	svc := service.NewStatsService(
		repository.NewStatsRepository(db),
		repository.NewNovelRepo(db),
		repository.NewChapterRepo(db),
		repository.NewRatingRepository(db),
	)

	var out bytes.Buffer
	require.NoError(t, rebuildStats(context.Background(), &out, svc))
	assert.Equal(t, "✓ Rebuilt stats for 2 novels\n", out.String())

	var stats models.NovelStats
	require.NoError(t, db.First(&stats, "novel_id = ?", novel.ID).Error)
	assert.Equal(t, int64(2), stats.ChapterCount)
}

func TestPromoteUser(t *testing.T) {
	db := testutil.NewDB(t)
	u := testutil.SeedUser(t, db, "editor", models.RoleUser)
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, promoteUser(ctx, &out, repo, svc, "  Editor@Example.com ", models.RoleAdmin))
	assert.Equal(t, "✓ editor (editor@example.com) is now admin\n", out.String())

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)

	err = promoteUser(ctx, &out, repo, svc, "nobody@example.com", models.RoleAdmin)
	assert.EqualError(t, err, "no user registered with nobody@example.com")

	err = promoteUser(ctx, &out, repo, svc, "editor@example.com", "owner")
	assert.ErrorIs(t, err, service.ErrInvalidRole)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"seed", "genres"},
		{"stats", "rebuild"},
		{"user", "promote"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	flag := promoteCmd.Flags().Lookup("role")
	require.NotNil(t, flag)
	assert.Equal(t, models.RoleAdmin, flag.DefValue)
}
