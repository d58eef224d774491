package domain

import (
	"context"
	"errors"

	"github.com/ujdhesa/unisubs/internal/common"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type DashboardDomain interface {
	Get(ctx context.Context, req *model.DashboardRequest) (*model.DashboardResponse, error)
}

type dashboardDomain struct {
	teamRepo         repository.TeamRepository
	teamVideoRepo    repository.TeamVideoRepository
	projectRepo      repository.ProjectRepository
	workflowRepo     repository.WorkflowRepository
	collabRepo       repository.CollaborationRepository
	collaboratorRepo repository.CollaboratorRepository
	collabLangRepo   repository.CollaborationLanguageRepository
	userRepo         repository.UserRepository
	roleVerifier     *common.TeamRoleVerifier
}

func NewDashboardDomain(
	teamRepo repository.TeamRepository,
	teamVideoRepo repository.TeamVideoRepository,
	projectRepo repository.ProjectRepository,
	workflowRepo repository.WorkflowRepository,
	collabRepo repository.CollaborationRepository,
	collaboratorRepo repository.CollaboratorRepository,
	collabLangRepo repository.CollaborationLanguageRepository,
	userRepo repository.UserRepository,
	teamMemberRepo repository.TeamMemberRepository,
) *dashboardDomain {
	return &dashboardDomain{
		teamRepo:         teamRepo,
		teamVideoRepo:    teamVideoRepo,
		projectRepo:      projectRepo,
		workflowRepo:     workflowRepo,
		collabRepo:       collabRepo,
		collaboratorRepo: collaboratorRepo,
		collabLangRepo:   collabLangRepo,
		userRepo:         userRepo,
		roleVerifier:     common.NewTeamRoleVerifier(teamMemberRepo),
	}
}

func (d *dashboardDomain) Get(
	ctx context.Context, req *model.DashboardRequest,
) (*model.DashboardResponse, error) {
	team, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	member, err := d.roleVerifier.Member(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	if !team.CollaborationEnabled() {
		return nil, errorx.New(errorx.Unavailable, "Team does not use the collaboration workflow")
	}

	workflow, err := d.workflowRepo.GetCollaborationWorkflow(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration workflow: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, member.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	teamLanguages, err := d.collabLangRepo.GetCodesByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration languages: %v", err)
		return nil, errorx.Unknown
	}

	languages := common.LanguagesForMember(user.Languages, teamLanguages)

	resp := &model.DashboardResponse{}

	joined, err := d.collabRepo.GetJoinedByUserID(ctx, member.UserID, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get joined collaborations: %v", err)
		return nil, errorx.Unknown
	}

	for _, collaboration := range joined {
		resp.Joined = append(resp.Joined, convertCollaboration(&collaboration, nil))
	}

	canJoin, err := d.canJoin(ctx, team, workflow, member, languages)
	if err != nil {
		return nil, err
	}
	resp.CanJoin = canJoin

	canStart, err := d.canStart(ctx, team, languages)
	if err != nil {
		return nil, err
	}
	resp.CanStart = canStart

	return resp, nil
}

// canJoin lists joinable collaborations grouped by how close to completion
// they are, closest first, so work in flight surfaces before fresh units.
func (d *dashboardDomain) canJoin(
	ctx context.Context,
	team *entity.Team,
	workflow *entity.CollaborationWorkflow,
	member *entity.TeamMember,
	languages []string,
) ([]model.Collaboration, error) {
	limit := xcontext.Configs(ctx).Workflow.DashboardCanJoinLimit

	var groups [][]entity.CollaborationState

	if workflow.MemberCanApprove(*member) {
		group := []entity.CollaborationState{entity.CollabNeedsApprover}
		if !workflow.Only1Approver {
			group = append(group, entity.CollabBeingApproved)
		}

		groups = append(groups, group)
	}

	reviewGroup := []entity.CollaborationState{entity.CollabNeedsReviewer}
	if !workflow.Only1Reviewer {
		reviewGroup = append(reviewGroup, entity.CollabBeingReviewed)
	}
	groups = append(groups, reviewGroup)

	subtitleGroup := []entity.CollaborationState{entity.CollabNeedsSubtitler}
	if !workflow.Only1Subtitler {
		subtitleGroup = append(subtitleGroup, entity.CollabBeingSubtitled)
	}
	groups = append(groups, subtitleGroup)

	var result []model.Collaboration
	for _, states := range groups {
		collaborations, err := d.collabRepo.GetOpenByTeam(ctx, repository.OpenCollaborationFilter{
			TeamID:        team.ID,
			States:        states,
			Languages:     languages,
			ExcludeUserID: member.UserID,
			Limit:         limit,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get open collaborations: %v", err)
			return nil, errorx.Unknown
		}

		for _, collaboration := range collaborations {
			result = append(result, convertCollaboration(&collaboration, nil))
		}
	}

	// Units nobody claimed yet carry no team but are joinable subtitling
	// work on the team's own and shared-project videos.
	videos, err := d.visibleVideos(ctx, team)
	if err != nil {
		return nil, err
	}

	unclaimed, err := d.collabRepo.GetUnclaimedByTeamVideoIDs(
		ctx, videoIDs(videos), languages, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get unclaimed collaborations: %v", err)
		return nil, errorx.Unknown
	}

	for _, collaboration := range unclaimed {
		result = append(result, convertCollaboration(&collaboration, nil))
	}

	return result, nil
}

// canStart lists subtitling work nobody began on the team's own and
// shared-project videos: unclaimed needs_subtitler units first, then video
// and language pairs that have no unit at all.
func (d *dashboardDomain) canStart(
	ctx context.Context, team *entity.Team, languages []string,
) ([]model.Collaboration, error) {
	limit := xcontext.Configs(ctx).Workflow.DashboardCanStartLimit

	videos, err := d.visibleVideos(ctx, team)
	if err != nil {
		return nil, err
	}

	videoByID := make(map[string]entity.TeamVideo, len(videos))
	for _, video := range videos {
		videoByID[video.ID] = video
	}

	unclaimed, err := d.collabRepo.GetUnclaimedByTeamVideoIDs(
		ctx, videoIDs(videos), languages, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get unclaimed collaborations: %v", err)
		return nil, errorx.Unknown
	}

	var result []model.Collaboration
	for _, collaboration := range unclaimed {
		converted := convertCollaboration(&collaboration, nil)
		converted.VideoID = videoByID[collaboration.TeamVideoID].VideoID
		result = append(result, converted)

		if len(result) >= limit {
			return result, nil
		}
	}

	for _, video := range videos {
		existing, err := d.collabRepo.GetListByTeamVideoID(ctx, video.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get collaborations: %v", err)
			return nil, errorx.Unknown
		}

		existingCodes := make([]string, 0, len(existing))
		for _, collaboration := range existing {
			existingCodes = append(existingCodes, collaboration.LanguageCode)
		}

		for _, code := range languages {
			if slices.Contains(existingCodes, code) {
				continue
			}

			result = append(result, model.Collaboration{
				TeamVideoID:  video.ID,
				VideoID:      video.VideoID,
				LanguageCode: code,
				State:        string(entity.CollabNeedsSubtitler),
			})

			if len(result) >= limit {
				return result, nil
			}
		}
	}

	return result, nil
}

// visibleVideos returns the team's videos plus videos of projects shared
// with the team.
func (d *dashboardDomain) visibleVideos(
	ctx context.Context, team *entity.Team,
) ([]entity.TeamVideo, error) {
	videos, err := d.teamVideoRepo.GetListByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team videos: %v", err)
		return nil, errorx.Unknown
	}

	sharedProjects, err := d.projectRepo.GetSharedProjectIDs(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get shared projects: %v", err)
		return nil, errorx.Unknown
	}

	if len(sharedProjects) > 0 {
		sharedVideos, err := d.teamVideoRepo.GetListByProjectIDs(ctx, sharedProjects)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get shared videos: %v", err)
			return nil, errorx.Unknown
		}

		videos = append(videos, sharedVideos...)
	}

	return videos, nil
}

func videoIDs(videos []entity.TeamVideo) []string {
	ids := make([]string, 0, len(videos))
	for _, video := range videos {
		ids = append(ids, video.ID)
	}

	return ids
}
