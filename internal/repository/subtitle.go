package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type SubtitleRepository interface {
	GetLanguage(ctx context.Context, videoID, languageCode string) (*entity.SubtitleLanguage, error)
	GetLanguagesByVideo(ctx context.Context, videoID string) ([]entity.SubtitleLanguage, error)
	UpsertLanguage(ctx context.Context, videoID, languageCode string, complete bool) (*entity.SubtitleLanguage, error)
	CreateVersion(ctx context.Context, version *entity.SubtitleVersion) error
	GetLatestVersion(ctx context.Context, subtitleLanguageID string) (*entity.SubtitleVersion, error)
	PublishVersion(ctx context.Context, id string) error
}

type subtitleRepository struct{}

func NewSubtitleRepository() *subtitleRepository {
	return &subtitleRepository{}
}

func (r *subtitleRepository) GetLanguage(ctx context.Context, videoID, languageCode string) (*entity.SubtitleLanguage, error) {
	var result entity.SubtitleLanguage
	err := xcontext.DB(ctx).
		Take(&result, "video_id=? AND language_code=?", videoID, languageCode).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *subtitleRepository) GetLanguagesByVideo(ctx context.Context, videoID string) ([]entity.SubtitleLanguage, error) {
	var result []entity.SubtitleLanguage
	err := xcontext.DB(ctx).Find(&result, "video_id=?", videoID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *subtitleRepository) UpsertLanguage(
	ctx context.Context, videoID, languageCode string, complete bool,
) (*entity.SubtitleLanguage, error) {
	var result entity.SubtitleLanguage
	err := xcontext.DB(ctx).
		Where(entity.SubtitleLanguage{VideoID: videoID, LanguageCode: languageCode}).
		Attrs(entity.SubtitleLanguage{Base: entity.Base{ID: uuid.NewString()}}).
		FirstOrCreate(&result).Error
	if err != nil {
		return nil, err
	}

	if result.SubtitlesComplete != complete {
		err := xcontext.DB(ctx).
			Model(&entity.SubtitleLanguage{}).
			Where("id=?", result.ID).
			Update("subtitles_complete", complete).Error
		if err != nil {
			return nil, err
		}

		result.SubtitlesComplete = complete
	}

	return &result, nil
}

func (r *subtitleRepository) CreateVersion(ctx context.Context, version *entity.SubtitleVersion) error {
	return xcontext.DB(ctx).Create(version).Error
}

func (r *subtitleRepository) GetLatestVersion(ctx context.Context, subtitleLanguageID string) (*entity.SubtitleVersion, error) {
	var result entity.SubtitleVersion
	err := xcontext.DB(ctx).
		Where("subtitle_language_id=?", subtitleLanguageID).
		Order("number DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *subtitleRepository) PublishVersion(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.SubtitleVersion{}).
		Where("id=?", id).
		Update("visibility", "public").Error
}
