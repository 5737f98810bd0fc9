package service

import (
	"context"
	"mime/multipart"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/storage"

	"go.uber.org/zap"
)

const RecentChapterLimit = 20

type ChapterService interface {
	ListByNovel(ctx context.Context, novelRaw string) (*models.Novel, []models.Chapter, error)
	Get(ctx context.Context, novelRaw, chapterRaw string) (*models.Chapter, error)
	Recent(ctx context.Context) ([]models.Chapter, error)

	Create(ctx context.Context, form dto.CreateChapterForm, audio *multipart.FileHeader) (*models.Chapter, error)
	Update(ctx context.Context, id int64, form dto.UpdateChapterForm, audio *multipart.FileHeader) (*models.Chapter, error)
	Delete(ctx context.Context, id int64) error
}

type chapterService struct {
	repo     *repository.ChapterRepo
	novels   *repository.NovelRepo
	resolver Resolver
	stats    StatsService
	media    storage.Store
}

func NewChapterService(
	repo *repository.ChapterRepo,
	novels *repository.NovelRepo,
	resolver Resolver,
	stats StatsService,
	media storage.Store,
) ChapterService {
	return &chapterService{repo: repo, novels: novels, resolver: resolver, stats: stats, media: media}
}

func (s *chapterService) ListByNovel(ctx context.Context, novelRaw string) (*models.Novel, []models.Chapter, error) {
	n, err := s.resolver.ResolveNovel(ctx, novelRaw)
	if err != nil {
		return nil, nil, err
	}
	chapters, err := s.repo.ListByNovel(ctx, n.ID)
	if err != nil {
		return nil, nil, err
	}
	return n, chapters, nil
}

func (s *chapterService) Get(ctx context.Context, novelRaw, chapterRaw string) (*models.Chapter, error) {
	n, err := s.resolver.ResolveNovel(ctx, novelRaw)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveChapter(ctx, n, chapterRaw)
}

func (s *chapterService) Recent(ctx context.Context) ([]models.Chapter, error) {
	return s.repo.Recent(ctx, RecentChapterLimit)
}

func (s *chapterService) Create(ctx context.Context, form dto.CreateChapterForm, audio *multipart.FileHeader) (*models.Chapter, error) {
	if err := s.requireNovel(ctx, form.NovelID); err != nil {
		return nil, err
	}

	var audioURL string
	if audio != nil {
		var err error
		if audioURL, err = saveMedia(ctx, s.media, storage.Audio, audio); err != nil {
			return nil, err
		}
	}

	ch := form.ToModel(audioURL)
	if err := s.repo.Create(ctx, &ch); err != nil {
		discardMedia(ctx, s.media, audioURL)
		return nil, translateChapterWrite(err)
	}

	if err := s.refresh(ctx, ch.NovelID, "chapter create"); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Update applies the sent fields. Moving a chapter to another novel
// refreshes both novels' stats.
func (s *chapterService) Update(ctx context.Context, id int64, form dto.UpdateChapterForm, audio *multipart.FileHeader) (*models.Chapter, error) {
	ch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	previousNovel := ch.NovelID

	form.ApplyTo(ch)
	if ch.NovelID != previousNovel {
		if err := s.requireNovel(ctx, ch.NovelID); err != nil {
			return nil, err
		}
	}

	oldAudio := ch.AudioURL
	var newAudio string
	if audio != nil {
		if newAudio, err = saveMedia(ctx, s.media, storage.Audio, audio); err != nil {
			return nil, err
		}
		ch.AudioURL = newAudio
	}

	if err := s.repo.Update(ctx, ch); err != nil {
		discardMedia(ctx, s.media, newAudio)
		return nil, translateChapterWrite(err)
	}
	if newAudio != "" {
		discardMedia(ctx, s.media, oldAudio)
	}

	if err := s.refresh(ctx, ch.NovelID, "chapter update"); err != nil {
		return nil, err
	}
	if ch.NovelID != previousNovel {
		if err := s.refresh(ctx, previousNovel, "chapter move"); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

func (s *chapterService) Delete(ctx context.Context, id int64) error {
	ch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrChapterNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrChapterNotFound
		}
		return err
	}
	discardMedia(ctx, s.media, ch.AudioURL)

	return s.refresh(ctx, ch.NovelID, "chapter delete")
}

func (s *chapterService) requireNovel(ctx context.Context, novelID int64) error {
	exists, err := s.novels.Exists(ctx, novelID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownNovel
	}
	return nil
}

func (s *chapterService) refresh(ctx context.Context, novelID int64, cause string) error {
	if _, err := s.stats.Refresh(ctx, novelID); err != nil {
		zap.L().Error("stats refresh failed",
			zap.String("cause", cause),
			zap.Int64("novel_id", novelID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func translateChapterWrite(err error) error {
	switch {
	case repository.IsDuplicate(err):
		return ErrDuplicateChapter
	case repository.IsForeignKeyViolation(err):
		return ErrUnknownNovel
	default:
		return err
	}
}
