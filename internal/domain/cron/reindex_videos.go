package cron

import (
	"context"
	"time"

	"github.com/ujdhesa/unisubs/internal/client"
	"github.com/ujdhesa/unisubs/internal/domain/search"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/dateutil"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

// ReindexVideosCronJob rebuilds the video search index once a day, so videos
// added while the search server was unreachable still become searchable.
type ReindexVideosCronJob struct {
	teamVideoRepo repository.TeamVideoRepository
	searchCaller  client.SearchCaller
}

func NewReindexVideosCronJob(
	teamVideoRepo repository.TeamVideoRepository,
	searchCaller client.SearchCaller,
) *ReindexVideosCronJob {
	return &ReindexVideosCronJob{
		teamVideoRepo: teamVideoRepo,
		searchCaller:  searchCaller,
	}
}

func (job *ReindexVideosCronJob) Do(ctx context.Context) {
	videos, err := job.teamVideoRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get all team videos: %v", err)
		return
	}

	for _, video := range videos {
		err := job.searchCaller.IndexVideo(ctx, video.ID, search.VideoData{
			Title:                    video.Title,
			PrimaryAudioLanguageCode: video.PrimaryAudioLanguageCode,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot reindex video %s: %v", video.ID, err)
			continue
		}
	}
}

func (job *ReindexVideosCronJob) RunNow() bool {
	return true
}

func (job *ReindexVideosCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
