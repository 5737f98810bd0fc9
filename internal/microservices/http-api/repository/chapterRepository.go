package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChapterRepo struct {
	db *gorm.DB
}

func NewChapterRepo(db *gorm.DB) *ChapterRepo {
	return &ChapterRepo{db: db}
}

// ListByNovel returns a novel's chapters in reading order.
func (r *ChapterRepo) ListByNovel(ctx context.Context, novelID int64) ([]models.Chapter, error) {
	var list []models.Chapter
	if err := r.db.WithContext(ctx).
		Where("novel_id = ?", novelID).
		Order("order_index asc").
		Order("chapter_number asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return list, nil
}

// AudioURLsByNovels returns the non-empty audio URLs of every chapter of
// the given novels.
func (r *ChapterRepo) AudioURLsByNovels(ctx context.Context, novelIDs []int64) ([]string, error) {
	var urls []string
	if err := r.db.WithContext(ctx).
		Model(&models.Chapter{}).
		Where("novel_id IN ? AND audio_url <> ''", novelIDs).
		Pluck("audio_url", &urls).Error; err != nil {
		return nil, fmt.Errorf("list chapter audio: %w", err)
	}
	return urls, nil
}

func (r *ChapterRepo) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	var ch models.Chapter
	if err := r.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// FindByNumber looks for a chapter of the novel whose primary key or chapter
// number equals n. A primary key hit is preferred over a chapter number hit.
func (r *ChapterRepo) FindByNumber(ctx context.Context, novelID, n int64) (*models.Chapter, error) {
	var ch models.Chapter
	err := r.db.WithContext(ctx).
		Where("novel_id = ? AND (id = ? OR chapter_number = ?)", novelID, n, n).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN id = ? THEN 0 ELSE 1 END",
			Vars:               []interface{}{n},
			WithoutParentheses: true,
		}}).
		First(&ch).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// FindByTitle is an exact, case-sensitive match within one novel.
func (r *ChapterRepo) FindByTitle(ctx context.Context, novelID int64, title string) (*models.Chapter, error) {
	var ch models.Chapter
	if err := r.db.WithContext(ctx).
		Where("novel_id = ? AND title = ?", novelID, title).
		Order("order_index asc").
		First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// Recent returns the newest chapters across all novels with their novel's
// id and title loaded.
func (r *ChapterRepo) Recent(ctx context.Context, limit int) ([]models.Chapter, error) {
	var list []models.Chapter
	if err := r.db.WithContext(ctx).
		Preload("Novel", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("recent chapters: %w", err)
	}
	return list, nil
}

func (r *ChapterRepo) CountByNovel(ctx context.Context, novelID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Chapter{}).Where("novel_id = ?", novelID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return count, nil
}

func (r *ChapterRepo) Create(ctx context.Context, ch *models.Chapter) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ch).Error; err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}
	return nil
}

func (r *ChapterRepo) Update(ctx context.Context, ch *models.Chapter) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ch).Error; err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	return nil
}

func (r *ChapterRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Chapter{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete chapter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
