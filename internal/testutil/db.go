// Package testutil holds fixtures shared by repository and service tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"novelhub/database"
	"novelhub/internal/microservices/http-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:novelhub_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every statement on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedNovel creates an author and a novel with the given title.
func SeedNovel(t *testing.T, db *gorm.DB, title string) *models.Novel {
	t.Helper()

	author := models.Author{Name: "Author of " + title}
	require.NoError(t, db.Where(models.Author{Name: author.Name}).FirstOrCreate(&author).Error)

	novel := &models.Novel{
		Title:         title,
		AuthorID:      author.ID,
		Publisher:     "Webnovel House",
		CoverImageURL: "http://localhost:8080/media/novel_covers/cover.png",
		Synopsis:      "A story worth reading twice.",
		Status:        models.StatusOngoing,
	}
	require.NoError(t, db.Create(novel).Error)
	return novel
}

// SeedChapter adds a chapter to novelID; order follows the chapter number.
func SeedChapter(t *testing.T, db *gorm.DB, novelID int64, number int, title string) *models.Chapter {
	t.Helper()

	ch := &models.Chapter{
		NovelID:       novelID,
		ChapterNumber: number,
		Title:         title,
		ContentText:   "Once upon a time.",
		OrderIndex:    number,
	}
	require.NoError(t, db.Create(ch).Error)
	return ch
}

// SeedUser creates a user with a placeholder password hash.
func SeedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$placeholderplaceholderplaceholderplaceholderplacehold",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedGenre creates a genre with the given name and slug.
func SeedGenre(t *testing.T, db *gorm.DB, name, slug string) *models.Genre {
	t.Helper()

	g := &models.Genre{Name: name, Slug: slug}
	require.NoError(t, db.Create(g).Error)
	return g
}
