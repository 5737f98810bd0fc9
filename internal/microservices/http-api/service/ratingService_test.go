package service

import (
	"context"
	"testing"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRatings(t *testing.T, env *testEnv, novelID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&models.NovelRating{}).Where("novel_id = ?", novelID).Count(&n).Error)
	return n
}

func TestRatingUpsert_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	user := testutil.SeedUser(t, env.db, "sunny", models.RoleUser)

	first, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, 4)
	require.NoError(t, err)
	second, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.Rating)
	assert.Equal(t, "sunny", second.Username)
	assert.Equal(t, int64(1), countRatings(t, env, novel.ID))

	stats, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.RatingCount)
	assert.Equal(t, 4.0, stats.AverageRating)
}

func TestRatingUpsert_ChangesScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	user := testutil.SeedUser(t, env.db, "sunny", models.RoleUser)

	_, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, 2)
	require.NoError(t, err)
	resp, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)

	stats, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.RatingCount)
	assert.Equal(t, 5.0, stats.AverageRating)
}

func TestRatingUpsert_TwoUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Lord of Mysteries")
	klein := testutil.SeedUser(t, env.db, "klein", models.RoleUser)
	audrey := testutil.SeedUser(t, env.db, "audrey", models.RoleUser)

	_, err := env.ratingSvc.Upsert(ctx, klein.ID, novel.ID, 5)
	require.NoError(t, err)
	_, err = env.ratingSvc.Upsert(ctx, audrey.ID, novel.ID, 3)
	require.NoError(t, err)

	stats, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.RatingCount)
	assert.Equal(t, 4.0, stats.AverageRating)
}

func TestRatingUpsert_Boundaries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	user := testutil.SeedUser(t, env.db, "sunny", models.RoleUser)

	for _, bad := range []int{0, 6, -1} {
		_, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, bad)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating=%d", bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, countRatings(t, env, novel.ID))
	assert.Zero(t, countStatsRows(t, env))

	for _, good := range []int{models.MinRating, models.MaxRating} {
		resp, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, good)
		require.NoError(t, err, "rating=%d", good)
		assert.Equal(t, good, resp.Rating)
	}
}

func TestRatingUpsert_UnknownNovel(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.SeedUser(t, env.db, "sunny", models.RoleUser)

	_, err := env.ratingSvc.Upsert(context.Background(), user.ID, 42, 3)
	assert.ErrorIs(t, err, ErrUnknownNovel)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, countRatings(t, env, 42))
}

func TestRatingUpsert_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	user := testutil.SeedUser(t, env.db, "sunny", models.RoleUser)
	require.NoError(t, env.db.Delete(&models.User{}, user.ID).Error)

	_, err := env.ratingSvc.Upsert(ctx, user.ID, novel.ID, 3)

	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnknownNovel)
	assert.Zero(t, countRatings(t, env, novel.ID))

	stats, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.RatingCount)
}

func TestRatingDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	a := testutil.SeedUser(t, env.db, "a-reader", models.RoleUser)
	b := testutil.SeedUser(t, env.db, "b-reader", models.RoleUser)

	_, err := env.ratingSvc.Upsert(ctx, a.ID, novel.ID, 1)
	require.NoError(t, err)
	_, err = env.ratingSvc.Upsert(ctx, b.ID, novel.ID, 5)
	require.NoError(t, err)

	require.NoError(t, env.ratingSvc.Delete(ctx, a.ID, novel.ID))

	stats, err := env.stats.GetOrDefault(ctx, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.RatingCount)
	assert.Equal(t, 5.0, stats.AverageRating)

	err = env.ratingSvc.Delete(ctx, a.ID, novel.ID)
	assert.ErrorIs(t, err, ErrRatingNotFound)
}

func TestRatingGetAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	novel := testutil.SeedNovel(t, env.db, "Shadow Slave")
	user := testutil.SeedUser(t, env.db, "sunny", models.RoleUser)

	_, err := env.ratingSvc.GetUserRating(ctx, user.ID, novel.ID)
	assert.ErrorIs(t, err, ErrRatingNotFound)

	_, err = env.ratingSvc.Upsert(ctx, user.ID, novel.ID, 3)
	require.NoError(t, err)

	mine, err := env.ratingSvc.GetUserRating(ctx, user.ID, novel.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, mine.Rating)

	page, err := env.ratingSvc.ListByNovel(ctx, novel.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "sunny", page.Data[0].Username)
	assert.Equal(t, int64(1), page.Pagination.Total)

	_, err = env.ratingSvc.ListByNovel(ctx, 999, 1, 20)
	assert.ErrorIs(t, err, ErrNovelNotFound)
}
