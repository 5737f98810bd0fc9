package service

import (
	"context"
	"testing"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countStatsRows(t *testing.T, env *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&models.NovelStats{}).Count(&n).Error)
	return n
}

func TestStats_GetOrDefault_Synthesized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	testutil.SeedChapter(t, env.db, novel.ID, 1, "One")
	testutil.SeedChapter(t, env.db, novel.ID, 2, "Two")
	testutil.SeedChapter(t, env.db, novel.ID, 3, "Three")

	stats, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)

	assert.Equal(t, novel.ID, stats.NovelID)
	assert.Equal(t, "Shadow Slave", stats.Title)
	assert.Equal(t, int64(3), stats.ChapterCount)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.RatingCount)
	assert.Zero(t, stats.ReaderCount)
	assert.Zero(t, stats.TotalViews)
	assert.Nil(t, stats.LastUpdated)

	// reading never persists anything
	assert.Zero(t, countStatsRows(t, env))
}

func TestStats_GetOrDefault_UnknownNovel(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.stats.GetOrDefault(context.Background(), 404)
	require.NoError(t, err)
	assert.Equal(t, int64(404), stats.NovelID)
	assert.Empty(t, stats.Title)
	assert.Zero(t, stats.ChapterCount)
}

func TestStats_Refresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	novel := testutil.SeedNovel(t, env.db, "Lord of Mysteries")
	testutil.SeedChapter(t, env.db, novel.ID, 1, "Crimson")
	for i, score := range []int{5, 4, 4} {
		u := testutil.SeedUser(t, env.db, "reader"+string(rune('a'+i)), models.RoleUser)
		require.NoError(t, env.db.Create(&models.NovelRating{NovelID: novel.ID, UserID: u.ID, Rating: score}).Error)
	}

	row, err := env.stats.Refresh(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.RatingCount)
	assert.Equal(t, int64(1), row.ChapterCount)
	assert.InDelta(t, 13.0/3.0, row.AverageRating, 1e-9)
	require.NotNil(t, row.LastUpdated)

	var stored models.NovelStats
	require.NoError(t, env.db.First(&stored, "novel_id = ?", novel.ID).Error)
	assert.InDelta(t, 13.0/3.0, stored.AverageRating, 1e-9)

	// readers see one decimal place
	view, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, view.AverageRating)
	assert.NotNil(t, view.LastUpdated)
}

func TestStats_RefreshKeepsCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")

	_, err := env.stats.Refresh(ctx, novel.ID)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.NovelStats{}).
		Where("novel_id = ?", novel.ID).
		Updates(map[string]any{"reader_count": 12, "total_views": 340}).Error)

	testutil.SeedChapter(t, env.db, novel.ID, 1, "One")
	row, err := env.stats.Refresh(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.ChapterCount)

	var stored models.NovelStats
	require.NoError(t, env.db.First(&stored, "novel_id = ?", novel.ID).Error)
	assert.Equal(t, int64(12), stored.ReaderCount)
	assert.Equal(t, int64(340), stored.TotalViews)
	assert.Equal(t, int64(1), stored.ChapterCount)
	assert.Equal(t, int64(1), countStatsRows(t, env))
}

func TestStats_RefreshMissingNovel(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stats.Refresh(context.Background(), 77)
	assert.ErrorIs(t, err, ErrStatsIntegrity)
	assert.Zero(t, countStatsRows(t, env))
}

func TestStats_RebuildAll(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedNovel(t, env.db, "A")
	testutil.SeedNovel(t, env.db, "B")

	n, err := env.stats.RebuildAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(2), countStatsRows(t, env))
}
