package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/client"
	"github.com/ujdhesa/unisubs/internal/common"
	"github.com/ujdhesa/unisubs/internal/domain/search"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"gorm.io/gorm"
)

type TeamVideoDomain interface {
	Add(ctx context.Context, req *model.AddTeamVideoRequest) (*model.AddTeamVideoResponse, error)
	Move(ctx context.Context, req *model.MoveTeamVideoRequest) (*model.MoveTeamVideoResponse, error)
	Remove(ctx context.Context, req *model.RemoveTeamVideoRequest) (*model.RemoveTeamVideoResponse, error)
	GetList(ctx context.Context, req *model.GetTeamVideosRequest) (*model.GetTeamVideosResponse, error)
	Search(ctx context.Context, req *model.SearchVideosRequest) (*model.SearchVideosResponse, error)
}

type teamVideoDomain struct {
	teamRepo         repository.TeamRepository
	teamVideoRepo    repository.TeamVideoRepository
	projectRepo      repository.ProjectRepository
	workflowResolver *common.WorkflowResolver
	collabRepo       repository.CollaborationRepository
	collabSyncer     *common.CollaborationSyncer
	taskRepo         repository.TaskRepository
	roleVerifier     *common.TeamRoleVerifier
	searchCaller     client.SearchCaller
}

func NewTeamVideoDomain(
	teamRepo repository.TeamRepository,
	teamVideoRepo repository.TeamVideoRepository,
	projectRepo repository.ProjectRepository,
	workflowRepo repository.WorkflowRepository,
	collabRepo repository.CollaborationRepository,
	collaboratorRepo repository.CollaboratorRepository,
	collabLangRepo repository.CollaborationLanguageRepository,
	taskRepo repository.TaskRepository,
	teamMemberRepo repository.TeamMemberRepository,
	searchCaller client.SearchCaller,
) *teamVideoDomain {
	return &teamVideoDomain{
		teamRepo:         teamRepo,
		teamVideoRepo:    teamVideoRepo,
		projectRepo:      projectRepo,
		workflowResolver: common.NewWorkflowResolver(teamRepo, workflowRepo),
		collabRepo:       collabRepo,
		collabSyncer:     common.NewCollaborationSyncer(collabLangRepo, collabRepo, collaboratorRepo),
		taskRepo:         taskRepo,
		roleVerifier:     common.NewTeamRoleVerifier(teamMemberRepo),
		searchCaller:     searchCaller,
	}
}

func (d *teamVideoDomain) Add(
	ctx context.Context, req *model.AddTeamVideoRequest,
) (*model.AddTeamVideoResponse, error) {
	team, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.ManagerRoles...); err != nil {
		return nil, err
	}

	if req.ProjectID != "" {
		project, err := d.projectRepo.GetByID(ctx, req.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found project")
			}

			xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
			return nil, errorx.Unknown
		}

		if project.TeamID != team.ID {
			return nil, errorx.New(errorx.BadRequest, "Project belongs to another team")
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	video := &entity.TeamVideo{
		Base:                     entity.Base{ID: uuid.NewString()},
		TeamID:                   team.ID,
		ProjectID:                req.ProjectID,
		VideoID:                  req.VideoID,
		Title:                    req.Title,
		PrimaryAudioLanguageCode: req.PrimaryAudioLanguageCode,
		DurationSeconds:          req.DurationSeconds,
	}

	if err := d.teamVideoRepo.Create(ctx, video); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create team video: %v", err)
		return nil, errorx.Unknown
	}

	workflow, err := d.workflowResolver.ResolveForTeam(ctx, team)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve team workflow: %v", err)
		return nil, errorx.Unknown
	}

	switch workflow := workflow.(type) {
	case entity.CollaborationWorkflow:
		if err := d.collabSyncer.SyncVideo(ctx, team, video); err != nil {
			return nil, err
		}

	case entity.TaskWorkflow:
		if err := d.autocreateTasks(ctx, workflow, team, video); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	err = d.searchCaller.IndexVideo(ctx, video.ID, search.VideoData{
		Title:                    video.Title,
		PrimaryAudioLanguageCode: video.PrimaryAudioLanguageCode,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index team video: %v", err)
	}

	return &model.AddTeamVideoResponse{ID: video.ID}, nil
}

func (d *teamVideoDomain) Move(
	ctx context.Context, req *model.MoveTeamVideoRequest,
) (*model.MoveTeamVideoResponse, error) {
	video, err := d.teamVideoRepo.GetByID(ctx, req.TeamVideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team video")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, video.TeamID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	target, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get target team: %v", err)
		return nil, errorx.Unknown
	}

	if target.ID != video.TeamID {
		if err := d.roleVerifier.Verify(ctx, target.ID, entity.AdminRoles...); err != nil {
			return nil, err
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	update := &entity.TeamVideo{TeamID: target.ID, ProjectID: req.ProjectID}
	if err := d.teamVideoRepo.UpdateByID(ctx, video.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot move team video: %v", err)
		return nil, errorx.Unknown
	}

	video.TeamID = target.ID
	video.ProjectID = req.ProjectID

	if err := d.collabSyncer.SyncVideo(ctx, target, video); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.MoveTeamVideoResponse{}, nil
}

func (d *teamVideoDomain) Remove(
	ctx context.Context, req *model.RemoveTeamVideoRequest,
) (*model.RemoveTeamVideoResponse, error) {
	video, err := d.teamVideoRepo.GetByID(ctx, req.TeamVideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team video")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, video.TeamID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	collaborations, err := d.collabRepo.GetListByTeamVideoID(ctx, video.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaborations: %v", err)
		return nil, errorx.Unknown
	}

	for _, collaboration := range collaborations {
		if err := d.collabRepo.DeleteByID(ctx, collaboration.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete collaboration: %v", err)
			return nil, errorx.Unknown
		}
	}

	tasks, err := d.taskRepo.GetOpenByTeamVideo(ctx, video.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get open tasks: %v", err)
		return nil, errorx.Unknown
	}

	for _, task := range tasks {
		if err := d.taskRepo.MarkDeleted(ctx, task.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete task: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.teamVideoRepo.DeleteByID(ctx, video.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete team video: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.searchCaller.DeleteVideo(ctx, video.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove team video from index: %v", err)
	}

	return &model.RemoveTeamVideoResponse{}, nil
}

func (d *teamVideoDomain) GetList(
	ctx context.Context, req *model.GetTeamVideosRequest,
) (*model.GetTeamVideosResponse, error) {
	team, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	videos, err := d.teamVideoRepo.GetListByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team videos: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetTeamVideosResponse{}
	for _, video := range videos {
		resp.Videos = append(resp.Videos, convertTeamVideo(&video))
	}

	return resp, nil
}

func (d *teamVideoDomain) Search(
	ctx context.Context, req *model.SearchVideosRequest,
) (*model.SearchVideosResponse, error) {
	team, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	ids, err := d.searchCaller.SearchVideo(ctx, req.Query, 0, 50)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search videos: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.SearchVideosResponse{}
	for _, id := range ids {
		video, err := d.teamVideoRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
			return nil, errorx.Unknown
		}

		if video.TeamID != team.ID {
			continue
		}

		resp.Videos = append(resp.Videos, convertTeamVideo(video))
	}

	return resp, nil
}

// autocreateTasks creates the initial subtitle task of a newly added video
// when the team's task workflow asks for it.
func (d *teamVideoDomain) autocreateTasks(
	ctx context.Context, workflow entity.TaskWorkflow, team *entity.Team, video *entity.TeamVideo,
) error {
	if !workflow.AutocreateSubtitle {
		return nil
	}

	err := d.taskRepo.Create(ctx, &entity.Task{
		Base:         entity.Base{ID: uuid.NewString()},
		TeamID:       team.ID,
		TeamVideoID:  video.ID,
		LanguageCode: video.PrimaryAudioLanguageCode,
		Type:         entity.TaskSubtitle,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot autocreate subtitle task: %v", err)
		return errorx.Unknown
	}

	return nil
}

func convertTeamVideo(video *entity.TeamVideo) model.TeamVideo {
	return model.TeamVideo{
		ID:                       video.ID,
		TeamID:                   video.TeamID,
		ProjectID:                video.ProjectID,
		VideoID:                  video.VideoID,
		Title:                    video.Title,
		PrimaryAudioLanguageCode: video.PrimaryAudioLanguageCode,
	}
}
