package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/common"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/enum"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type TeamDomain interface {
	Create(ctx context.Context, req *model.CreateTeamRequest) (*model.CreateTeamResponse, error)
	Get(ctx context.Context, req *model.GetTeamRequest) (*model.GetTeamResponse, error)
	Update(ctx context.Context, req *model.UpdateTeamRequest) (*model.UpdateTeamResponse, error)
	AddMember(ctx context.Context, req *model.AddTeamMemberRequest) (*model.AddTeamMemberResponse, error)
	ChangeMemberRole(ctx context.Context, req *model.ChangeTeamMemberRoleRequest) (*model.ChangeTeamMemberRoleResponse, error)
	RemoveMember(ctx context.Context, req *model.RemoveTeamMemberRequest) (*model.RemoveTeamMemberResponse, error)
	GetMembers(ctx context.Context, req *model.GetTeamMembersRequest) (*model.GetTeamMembersResponse, error)
	UpdateCollaborationWorkflow(ctx context.Context, req *model.UpdateCollaborationWorkflowRequest) (*model.UpdateCollaborationWorkflowResponse, error)
	UpdateTaskWorkflow(ctx context.Context, req *model.UpdateTaskWorkflowRequest) (*model.UpdateTaskWorkflowResponse, error)
	SetCollaborationLanguages(ctx context.Context, req *model.SetCollaborationLanguagesRequest) (*model.SetCollaborationLanguagesResponse, error)
	SetLanguagePreferences(ctx context.Context, req *model.SetLanguagePreferencesRequest) (*model.SetLanguagePreferencesResponse, error)
	CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.CreateProjectResponse, error)
	ShareProject(ctx context.Context, req *model.ShareProjectRequest) (*model.ShareProjectResponse, error)
	AddMemberNarrowing(ctx context.Context, req *model.AddMemberNarrowingRequest) (*model.AddMemberNarrowingResponse, error)
	RemoveMemberNarrowing(ctx context.Context, req *model.RemoveMemberNarrowingRequest) (*model.RemoveMemberNarrowingResponse, error)
}

type teamDomain struct {
	teamRepo       repository.TeamRepository
	teamMemberRepo repository.TeamMemberRepository
	workflowRepo   repository.WorkflowRepository
	collabLangRepo repository.CollaborationLanguageRepository
	teamVideoRepo  repository.TeamVideoRepository
	collabSyncer   *common.CollaborationSyncer
	projectRepo    repository.ProjectRepository
	userRepo       repository.UserRepository
	narrowingRepo  repository.MembershipNarrowingRepository
	langPrefRepo   repository.TeamLanguagePreferenceRepository
	roleVerifier   *common.TeamRoleVerifier
}

func NewTeamDomain(
	teamRepo repository.TeamRepository,
	teamMemberRepo repository.TeamMemberRepository,
	workflowRepo repository.WorkflowRepository,
	collabLangRepo repository.CollaborationLanguageRepository,
	collabRepo repository.CollaborationRepository,
	collaboratorRepo repository.CollaboratorRepository,
	teamVideoRepo repository.TeamVideoRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	narrowingRepo repository.MembershipNarrowingRepository,
	langPrefRepo repository.TeamLanguagePreferenceRepository,
) *teamDomain {
	return &teamDomain{
		teamRepo:       teamRepo,
		teamMemberRepo: teamMemberRepo,
		workflowRepo:   workflowRepo,
		collabLangRepo: collabLangRepo,
		teamVideoRepo:  teamVideoRepo,
		collabSyncer:   common.NewCollaborationSyncer(collabLangRepo, collabRepo, collaboratorRepo),
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		narrowingRepo:  narrowingRepo,
		langPrefRepo:   langPrefRepo,
		roleVerifier:   common.NewTeamRoleVerifier(teamMemberRepo),
	}
}

func (d *teamDomain) Create(
	ctx context.Context, req *model.CreateTeamRequest,
) (*model.CreateTeamResponse, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or slug")
	}

	style := entity.WorkflowStyleNone
	if req.WorkflowStyle != "" {
		var err error
		style, err = enum.ToEnum[entity.WorkflowStyle](req.WorkflowStyle)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid workflow style %s", req.WorkflowStyle)
		}
	}

	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	team := &entity.Team{
		Base:          entity.Base{ID: uuid.NewString()},
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		WorkflowStyle: style,
	}

	if err := d.teamRepo.Create(ctx, team); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create team: %v", err)
		return nil, errorx.Unknown
	}

	err := d.teamMemberRepo.Create(ctx, &entity.TeamMember{
		TeamID: team.ID,
		UserID: userID,
		Role:   entity.RoleOwner,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create owner membership: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateTeamResponse{ID: team.ID}, nil
}

func (d *teamDomain) Get(
	ctx context.Context, req *model.GetTeamRequest,
) (*model.GetTeamResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	return &model.GetTeamResponse{Team: convertTeam(team)}, nil
}

func (d *teamDomain) Update(
	ctx context.Context, req *model.UpdateTeamRequest,
) (*model.UpdateTeamResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	update := &entity.Team{Description: req.Description}
	if req.WorkflowStyle != "" {
		style, err := enum.ToEnum[entity.WorkflowStyle](req.WorkflowStyle)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid workflow style %s", req.WorkflowStyle)
		}

		update.WorkflowStyle = style
	}

	if req.ProjectsEnabled != nil {
		update.ProjectsEnabled = *req.ProjectsEnabled
	}

	if req.TaskExpiration != nil {
		update.TaskExpiration = sql.NullInt64{Int64: *req.TaskExpiration, Valid: *req.TaskExpiration > 0}
	}

	if err := d.teamRepo.UpdateByID(ctx, team.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update team: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTeamResponse{}, nil
}

func (d *teamDomain) AddMember(
	ctx context.Context, req *model.AddTeamMemberRequest,
) (*model.AddTeamMemberResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	role, err := enum.ToEnum[entity.MemberRole](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
	}

	if role == entity.RoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot grant the owner role")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	err = d.teamMemberRepo.Create(ctx, &entity.TeamMember{
		TeamID: team.ID,
		UserID: req.UserID,
		Role:   role,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create team member: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddTeamMemberResponse{}, nil
}

func (d *teamDomain) ChangeMemberRole(
	ctx context.Context, req *model.ChangeTeamMemberRoleRequest,
) (*model.ChangeTeamMemberRoleResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	role, err := enum.ToEnum[entity.MemberRole](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
	}

	member, err := d.teamMemberRepo.Get(ctx, team.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return nil, errorx.Unknown
	}

	if member.Role == entity.RoleOwner || role == entity.RoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot change the owner role")
	}

	if err := d.teamMemberRepo.UpdateRole(ctx, team.ID, req.UserID, role); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update member role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ChangeTeamMemberRoleResponse{}, nil
}

func (d *teamDomain) RemoveMember(
	ctx context.Context, req *model.RemoveTeamMemberRequest,
) (*model.RemoveTeamMemberResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	// A member may always leave on their own; removing someone else needs
	// an admin role.
	if req.UserID != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
			return nil, err
		}
	}

	member, err := d.teamMemberRepo.Get(ctx, team.ID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return nil, errorx.Unknown
	}

	if member.Role == entity.RoleOwner {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot remove the owner")
	}

	if err := d.teamMemberRepo.Delete(ctx, team.ID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove team member: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveTeamMemberResponse{}, nil
}

func (d *teamDomain) GetMembers(
	ctx context.Context, req *model.GetTeamMembersRequest,
) (*model.GetTeamMembersResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	members, err := d.teamMemberRepo.GetListByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team members: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := make([]string, 0, len(members))
	for _, member := range members {
		userIDs = append(userIDs, member.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member users: %v", err)
		return nil, errorx.Unknown
	}

	nameByID := map[string]string{}
	for _, user := range users {
		nameByID[user.ID] = user.Name
	}

	resp := &model.GetTeamMembersResponse{}
	for _, member := range members {
		resp.Members = append(resp.Members, model.TeamMember{
			UserID: member.UserID,
			Name:   nameByID[member.UserID],
			Role:   string(member.Role),
		})
	}

	return resp, nil
}

func (d *teamDomain) UpdateCollaborationWorkflow(
	ctx context.Context, req *model.UpdateCollaborationWorkflowRequest,
) (*model.UpdateCollaborationWorkflowResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	workflow, err := d.workflowRepo.GetCollaborationWorkflow(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration workflow: %v", err)
		return nil, errorx.Unknown
	}

	if req.CompletionPolicy != "" {
		policy, err := enum.ToEnum[entity.CompletionPolicy](req.CompletionPolicy)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid completion policy %s", req.CompletionPolicy)
		}

		workflow.CompletionPolicy = policy
	}

	if req.Only1Subtitler != nil {
		workflow.Only1Subtitler = *req.Only1Subtitler
	}

	if req.Only1Reviewer != nil {
		workflow.Only1Reviewer = *req.Only1Reviewer
	}

	if req.Only1Approver != nil {
		workflow.Only1Approver = *req.Only1Approver
	}

	if req.OnCompletePublishLatest != nil {
		workflow.OnCompletePublishLatest = *req.OnCompletePublishLatest
	}

	if req.OnCompleteNotifyManagers != nil {
		workflow.OnCompleteNotifyManagers = *req.OnCompleteNotifyManagers
	}

	if req.LimitOpenTasks != nil {
		workflow.LimitOpenTasks = *req.LimitOpenTasks
	}

	if err := d.workflowRepo.UpdateCollaborationWorkflow(ctx, team.ID, workflow); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update collaboration workflow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCollaborationWorkflowResponse{}, nil
}

func (d *teamDomain) UpdateTaskWorkflow(
	ctx context.Context, req *model.UpdateTaskWorkflowRequest,
) (*model.UpdateTaskWorkflowResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	workflow, err := d.workflowRepo.GetTaskWorkflow(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get task workflow: %v", err)
		return nil, errorx.Unknown
	}

	if req.AutocreateSubtitle != nil {
		workflow.AutocreateSubtitle = *req.AutocreateSubtitle
	}

	if req.AutocreateTranslate != nil {
		workflow.AutocreateTranslate = *req.AutocreateTranslate
	}

	if req.ReviewAllowed != "" {
		policy, err := enum.ToEnum[entity.ReviewPolicy](req.ReviewAllowed)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid review policy %s", req.ReviewAllowed)
		}

		workflow.ReviewAllowed = policy
	}

	if req.ApproveAllowed != "" {
		policy, err := enum.ToEnum[entity.ApprovePolicy](req.ApproveAllowed)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid approve policy %s", req.ApproveAllowed)
		}

		workflow.ApproveAllowed = policy
	}

	if err := d.workflowRepo.UpdateTaskWorkflow(ctx, team.ID, workflow); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update task workflow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTaskWorkflowResponse{}, nil
}

func (d *teamDomain) SetCollaborationLanguages(
	ctx context.Context, req *model.SetCollaborationLanguagesRequest,
) (*model.SetCollaborationLanguagesResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	current, err := d.collabLangRepo.GetCodesByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration languages: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for _, code := range req.Languages {
		if slices.Contains(current, code) {
			continue
		}

		err := d.collabLangRepo.Create(ctx, &entity.CollaborationLanguage{
			Base:         entity.Base{ID: uuid.NewString()},
			TeamID:       team.ID,
			LanguageCode: code,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add collaboration language: %v", err)
			return nil, errorx.Unknown
		}
	}

	for _, code := range current {
		if slices.Contains(req.Languages, code) {
			continue
		}

		if err := d.collabLangRepo.Delete(ctx, team.ID, code); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot remove collaboration language: %v", err)
			return nil, errorx.Unknown
		}
	}

	// Bring every video of the team in line with the new language set.
	videos, err := d.teamVideoRepo.GetListByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team videos: %v", err)
		return nil, errorx.Unknown
	}

	for i := range videos {
		if err := d.collabSyncer.SyncVideo(ctx, team, &videos[i]); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SetCollaborationLanguagesResponse{}, nil
}

// SetLanguagePreferences replaces the set of languages the team wants
// translations in. The task workflow autocreates translate tasks for these
// languages.
func (d *teamDomain) SetLanguagePreferences(
	ctx context.Context, req *model.SetLanguagePreferencesRequest,
) (*model.SetLanguagePreferencesResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	current, err := d.langPrefRepo.GetCodesByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get language preferences: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for _, code := range req.Languages {
		if slices.Contains(current, code) {
			continue
		}

		err := d.langPrefRepo.Create(ctx, &entity.TeamLanguagePreference{
			Base:         entity.Base{ID: uuid.NewString()},
			TeamID:       team.ID,
			LanguageCode: code,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add language preference: %v", err)
			return nil, errorx.Unknown
		}
	}

	for _, code := range current {
		if slices.Contains(req.Languages, code) {
			continue
		}

		if err := d.langPrefRepo.Delete(ctx, team.ID, code); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot remove language preference: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SetLanguagePreferencesResponse{}, nil
}

func (d *teamDomain) CreateProject(
	ctx context.Context, req *model.CreateProjectRequest,
) (*model.CreateProjectResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	if !team.ProjectsEnabled {
		return nil, errorx.New(errorx.Unavailable, "Projects are not enabled for this team")
	}

	project := &entity.Project{
		Base:   entity.Base{ID: uuid.NewString()},
		TeamID: team.ID,
		Name:   req.Name,
		Slug:   req.Slug,
	}

	if err := d.projectRepo.Create(ctx, project); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProjectResponse{ID: project.ID}, nil
}

func (d *teamDomain) ShareProject(
	ctx context.Context, req *model.ShareProjectRequest,
) (*model.ShareProjectResponse, error) {
	project, err := d.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found project")
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, project.TeamID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if team.ID == project.TeamID {
		return nil, errorx.New(errorx.BadRequest, "Cannot share a project with its own team")
	}

	if err := d.projectRepo.ShareWithTeam(ctx, project.ID, team.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot share project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ShareProjectResponse{}, nil
}

func (d *teamDomain) AddMemberNarrowing(
	ctx context.Context, req *model.AddMemberNarrowingRequest,
) (*model.AddMemberNarrowingResponse, error) {
	team, err := d.getTeamBySlug(ctx, req.TeamSlug)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	if req.LanguageCode == "" && req.ProjectID == "" {
		return nil, errorx.New(errorx.BadRequest, "Narrowing needs a language or a project")
	}

	if _, err := d.teamMemberRepo.Get(ctx, team.ID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return nil, errorx.Unknown
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

	narrowing := &entity.MembershipNarrowing{
		Base:         entity.Base{ID: uuid.NewString()},
		TeamID:       team.ID,
		UserID:       req.UserID,
		LanguageCode: sql.NullString{String: req.LanguageCode, Valid: req.LanguageCode != ""},
		ProjectID:    sql.NullString{String: req.ProjectID, Valid: req.ProjectID != ""},
		CreatedBy:    xcontext.RequestUserID(ctx),
	}

	if err := d.narrowingRepo.Create(ctx, narrowing); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create membership narrowing: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddMemberNarrowingResponse{ID: narrowing.ID}, nil
}

func (d *teamDomain) RemoveMemberNarrowing(
	ctx context.Context, req *model.RemoveMemberNarrowingRequest,
) (*model.RemoveMemberNarrowingResponse, error) {
	narrowing, err := d.narrowingRepo.GetByID(ctx, req.NarrowingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found narrowing")
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership narrowing: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, narrowing.TeamID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	if err := d.narrowingRepo.DeleteByID(ctx, narrowing.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove membership narrowing: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveMemberNarrowingResponse{}, nil
}

func (d *teamDomain) getTeamBySlug(ctx context.Context, slug string) (*entity.Team, error) {
	team, err := d.teamRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	return team, nil
}

func convertTeam(team *entity.Team) model.Team {
	result := model.Team{
		ID:              team.ID,
		Name:            team.Name,
		Slug:            team.Slug,
		Description:     team.Description,
		WorkflowStyle:   string(team.WorkflowStyle),
		ProjectsEnabled: team.ProjectsEnabled,
	}

	if team.TaskExpiration.Valid {
		result.TaskExpiration = team.TaskExpiration.Int64
	}

	return result
}
