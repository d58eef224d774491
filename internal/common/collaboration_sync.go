package common

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// CollaborationSyncer reconciles the collaborations of a team video against
// the team's working languages. Missing languages get a fresh collaboration,
// unwanted ones are removed unless someone already works on them.
// Collaborations that survive a team change keep their collaborators but
// follow the new team.
type CollaborationSyncer struct {
	collabLangRepo   repository.CollaborationLanguageRepository
	collabRepo       repository.CollaborationRepository
	collaboratorRepo repository.CollaboratorRepository
}

func NewCollaborationSyncer(
	collabLangRepo repository.CollaborationLanguageRepository,
	collabRepo repository.CollaborationRepository,
	collaboratorRepo repository.CollaboratorRepository,
) *CollaborationSyncer {
	return &CollaborationSyncer{
		collabLangRepo:   collabLangRepo,
		collabRepo:       collabRepo,
		collaboratorRepo: collaboratorRepo,
	}
}

func (syncer *CollaborationSyncer) SyncVideo(
	ctx context.Context, team *entity.Team, video *entity.TeamVideo,
) error {
	languages, err := syncer.collabLangRepo.GetCodesByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration languages: %v", err)
		return errorx.Unknown
	}

	existing, err := syncer.collabRepo.GetListByTeamVideoID(ctx, video.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaborations: %v", err)
		return errorx.Unknown
	}

	existingCodes := make([]string, 0, len(existing))
	for _, collaboration := range existing {
		existingCodes = append(existingCodes, collaboration.LanguageCode)
	}

	projectID := sql.NullString{String: video.ProjectID, Valid: video.ProjectID != ""}

	for _, code := range languages {
		if slices.Contains(existingCodes, code) {
			continue
		}

		err := syncer.collabRepo.Create(ctx, &entity.Collaboration{
			Base:             entity.Base{ID: uuid.NewString()},
			TeamVideoID:      video.ID,
			LanguageCode:     code,
			ProjectID:        projectID,
			State:            entity.CollabNeedsSubtitler,
			LastActivityDate: xcontext.Now(ctx),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create collaboration: %v", err)
			return errorx.Unknown
		}
	}

	for _, collaboration := range existing {
		if collaboration.TeamID.Valid && collaboration.TeamID.String != team.ID {
			newTeamID := sql.NullString{String: team.ID, Valid: true}
			if err := syncer.collabRepo.SetTeam(ctx, collaboration.ID, newTeamID, projectID); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot reassign collaboration team: %v", err)
				return errorx.Unknown
			}
		}

		if slices.Contains(languages, collaboration.LanguageCode) {
			continue
		}

		collaborators, err := syncer.collaboratorRepo.GetListByCollaborationID(ctx, collaboration.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get collaborators: %v", err)
			return errorx.Unknown
		}

		// Never drop work someone already started.
		if len(collaborators) > 0 {
			continue
		}

		if err := syncer.collabRepo.DeleteByID(ctx, collaboration.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete collaboration: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
