package repository

import (
	"context"
	"fmt"
	"strings"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NovelRepo struct {
	db *gorm.DB
}

func NewNovelRepo(db *gorm.DB) *NovelRepo {
	return &NovelRepo{db: db}
}

func (r *NovelRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Novel, int64, error) {
	var list []models.Novel
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Novel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count novels: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres").
		Order("created_at desc").
		Order("id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list novels: %w", err)
	}

	return list, total, nil
}

func (r *NovelRepo) GetByID(ctx context.Context, id int64) (*models.Novel, error) {
	var n models.Novel
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Genres").First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByTitle is an exact, case-sensitive match. Titles are not unique, the
// oldest novel wins.
func (r *NovelRepo) GetByTitle(ctx context.Context, title string) (*models.Novel, error) {
	var n models.Novel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres").
		Where("title = ?", title).
		Order("id asc").
		First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NovelRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Novel, error) {
	var list []models.Novel
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get novels by ids: %w", err)
	}
	return list, nil
}

func (r *NovelRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Novel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check novel: %w", err)
	}
	return count > 0, nil
}

// Create inserts the novel and links n.Genres without upserting the genre rows.
func (r *NovelRepo) Create(ctx context.Context, n *models.Novel) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Genres.*").Create(n).Error; err != nil {
		return fmt.Errorf("create novel: %w", err)
	}
	return nil
}

// Update saves scalar columns and, when genres is non-nil, replaces the
// novel's genre links in the same transaction.
func (r *NovelRepo) Update(ctx context.Context, n *models.Novel, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(n).Error; err != nil {
			return fmt.Errorf("update novel: %w", err)
		}
		if genres == nil {
			return nil
		}
		if err := tx.Model(n).Association("Genres").Replace(genres); err != nil {
			return fmt.Errorf("replace genres: %w", err)
		}
		return nil
	})
}

func (r *NovelRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Novel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete novel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMany removes every listed novel and returns how many rows went away.
func (r *NovelRepo) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Novel{})
	if res.Error != nil {
		return 0, fmt.Errorf("bulk delete novels: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SearchByTitle performs a case-insensitive partial match on title.
// Every whitespace separated token must appear in the title.
// Example: "shadow slave" -> WHERE LOWER(title) LIKE '%shadow%' AND LOWER(title) LIKE '%slave%'
func (r *NovelRepo) SearchByTitle(ctx context.Context, query string) ([]models.Novel, error) {
	var list []models.Novel
	db := r.db.WithContext(ctx).Preload("Author").Preload("Genres")

	for _, t := range strings.Fields(strings.ToLower(query)) {
		db = db.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+escapeLike(t)+"%")
	}

	if err := db.Order("title asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search novels by title: %w", err)
	}
	return list, nil
}

func (r *NovelRepo) ListByAuthor(ctx context.Context, authorID int64) ([]models.Novel, error) {
	var list []models.Novel
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list novels by author: %w", err)
	}
	return list, nil
}

// ListByGenreSlug returns novels associated with the given genre slug.
func (r *NovelRepo) ListByGenreSlug(ctx context.Context, slug string) ([]models.Novel, error) {
	var list []models.Novel
	if err := r.db.WithContext(ctx).
		Model(&models.Novel{}).
		Joins("JOIN novel_genres ng ON ng.novel_id = novels.id").
		Joins("JOIN genres g ON g.id = ng.genre_id").
		Where("g.slug = ?", slug).
		Preload("Author").
		Preload("Genres").
		Order("novels.created_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list novels by genre: %w", err)
	}
	return list, nil
}

func (r *NovelRepo) RandomCompleted(ctx context.Context) (*models.Novel, error) {
	var n models.Novel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres").
		Where("status = ?", models.StatusCompleted).
		Order("RANDOM()").
		First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// AllIDs is used by the stats rebuild command.
func (r *NovelRepo) AllIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&models.Novel{}).Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list novel ids: %w", err)
	}
	return ids, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
