package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/common"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/pubsub"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const notificationTopic = "notifications"

type CollaborationDomain interface {
	Start(ctx context.Context, req *model.StartCollaborationRequest) (*model.StartCollaborationResponse, error)
	Join(ctx context.Context, req *model.JoinCollaborationRequest) (*model.JoinCollaborationResponse, error)
	Endorse(ctx context.Context, req *model.EndorseCollaborationRequest) (*model.EndorseCollaborationResponse, error)
	Unendorse(ctx context.Context, req *model.UnendorseCollaborationRequest) (*model.UnendorseCollaborationResponse, error)
	Leave(ctx context.Context, req *model.LeaveCollaborationRequest) (*model.LeaveCollaborationResponse, error)
	AddNote(ctx context.Context, req *model.AddCollaborationNoteRequest) (*model.AddCollaborationNoteResponse, error)
	Get(ctx context.Context, req *model.GetCollaborationRequest) (*model.GetCollaborationResponse, error)
}

type collaborationDomain struct {
	teamRepo         repository.TeamRepository
	teamMemberRepo   repository.TeamMemberRepository
	teamVideoRepo    repository.TeamVideoRepository
	projectRepo      repository.ProjectRepository
	workflowRepo     repository.WorkflowRepository
	collabRepo       repository.CollaborationRepository
	collaboratorRepo repository.CollaboratorRepository
	historyRepo      repository.CollaborationHistoryRepository
	noteRepo         repository.CollaborationNoteRepository
	collabLangRepo   repository.CollaborationLanguageRepository
	userRepo         repository.UserRepository
	subtitleRepo     repository.SubtitleRepository
	billingRepo      repository.BillingRecordRepository
	publisher        pubsub.Publisher
}

func NewCollaborationDomain(
	teamRepo repository.TeamRepository,
	teamMemberRepo repository.TeamMemberRepository,
	teamVideoRepo repository.TeamVideoRepository,
	projectRepo repository.ProjectRepository,
	workflowRepo repository.WorkflowRepository,
	collabRepo repository.CollaborationRepository,
	collaboratorRepo repository.CollaboratorRepository,
	historyRepo repository.CollaborationHistoryRepository,
	noteRepo repository.CollaborationNoteRepository,
	collabLangRepo repository.CollaborationLanguageRepository,
	userRepo repository.UserRepository,
	subtitleRepo repository.SubtitleRepository,
	billingRepo repository.BillingRecordRepository,
	publisher pubsub.Publisher,
) *collaborationDomain {
	return &collaborationDomain{
		teamRepo:         teamRepo,
		teamMemberRepo:   teamMemberRepo,
		teamVideoRepo:    teamVideoRepo,
		projectRepo:      projectRepo,
		workflowRepo:     workflowRepo,
		collabRepo:       collabRepo,
		collaboratorRepo: collaboratorRepo,
		historyRepo:      historyRepo,
		noteRepo:         noteRepo,
		collabLangRepo:   collabLangRepo,
		userRepo:         userRepo,
		subtitleRepo:     subtitleRepo,
		billingRepo:      billingRepo,
		publisher:        publisher,
	}
}

func (d *collaborationDomain) Start(
	ctx context.Context, req *model.StartCollaborationRequest,
) (*model.StartCollaborationResponse, error) {
	video, err := d.teamVideoRepo.GetByID(ctx, req.TeamVideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team video")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return nil, errorx.Unknown
	}

	if req.LanguageCode == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty language")
	}

	team, member, err := d.eligibleMembership(ctx, video, sql.NullString{})
	if err != nil {
		return nil, err
	}

	if !team.CollaborationEnabled() {
		return nil, errorx.New(errorx.Unavailable, "Team does not use the collaboration workflow")
	}

	languages, err := d.memberLanguages(ctx, team.ID, member.UserID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(languages, req.LanguageCode) {
		return nil, errorx.New(errorx.PermissionDenied, "You do not work in this language")
	}

	if _, err := d.collabRepo.Get(ctx, video.ID, req.LanguageCode); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Collaboration already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing collaboration: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	collaboration := &entity.Collaboration{
		Base:             entity.Base{ID: uuid.NewString()},
		TeamVideoID:      video.ID,
		LanguageCode:     req.LanguageCode,
		ProjectID:        sql.NullString{String: video.ProjectID, Valid: video.ProjectID != ""},
		State:            entity.CollabNeedsSubtitler,
		LastActivityDate: xcontext.Now(ctx),
	}

	if err := d.collabRepo.Create(ctx, collaboration); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create collaboration: %v", err)
		return nil, errorx.Unknown
	}

	state, err := d.join(ctx, collaboration, team, member)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.StartCollaborationResponse{
		CollaborationID: collaboration.ID,
		State:           string(state),
	}, nil
}

func (d *collaborationDomain) Join(
	ctx context.Context, req *model.JoinCollaborationRequest,
) (*model.JoinCollaborationResponse, error) {
	collaboration, err := d.collabRepo.GetByID(ctx, req.CollaborationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found collaboration")
		}

		xcontext.Logger(ctx).Errorf("Cannot get collaboration: %v", err)
		return nil, errorx.Unknown
	}

	video, err := d.teamVideoRepo.GetByID(ctx, collaboration.TeamVideoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return nil, errorx.Unknown
	}

	team, member, err := d.eligibleMembership(ctx, video, collaboration.TeamID)
	if err != nil {
		return nil, err
	}

	languages, err := d.memberLanguages(ctx, team.ID, member.UserID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(languages, collaboration.LanguageCode) {
		return nil, errorx.New(errorx.PermissionDenied, "You do not work in this language")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	state, err := d.join(ctx, collaboration, team, member)
	if err != nil {
		return nil, err
	}

	role, _ := entity.JoinRole(collaboration.State)

	xcontext.WithCommitDBTransaction(ctx)
	return &model.JoinCollaborationResponse{
		Role:  string(role),
		State: string(state),
	}, nil
}

// join adds the member as a collaborator, taking the team ownership of the
// collaboration when it has none yet. The caller must run it inside a
// transaction.
func (d *collaborationDomain) join(
	ctx context.Context,
	collaboration *entity.Collaboration,
	team *entity.Team,
	member *entity.TeamMember,
) (entity.CollaborationState, error) {
	workflow, err := d.workflowRepo.GetCollaborationWorkflow(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration workflow: %v", err)
		return "", errorx.Unknown
	}

	if _, err := d.collaboratorRepo.Get(ctx, collaboration.ID, member.UserID); err == nil {
		return "", errorx.New(errorx.AlreadyExists, "You already collaborate on this video")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing collaborator: %v", err)
		return "", errorx.Unknown
	}

	role, ok := joinableRole(collaboration.State, workflow, member)
	if !ok {
		return "", errorx.New(errorx.Unavailable, "Collaboration cannot be joined now")
	}

	if workflow.LimitOpenTasks > 0 {
		count, err := d.collabRepo.CountOpenByUserID(ctx, member.UserID, team.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count open collaborations: %v", err)
			return "", errorx.Unknown
		}

		if count >= int64(workflow.LimitOpenTasks) {
			return "", errorx.New(errorx.Unavailable, "You have too many open collaborations")
		}
	}

	now := xcontext.Now(ctx)
	err = d.collaboratorRepo.Create(ctx, &entity.Collaborator{
		Base:            entity.Base{ID: uuid.NewString()},
		CollaborationID: collaboration.ID,
		UserID:          member.UserID,
		Role:            role,
		StartDate:       now,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create collaborator: %v", err)
		return "", errorx.Unknown
	}

	if !collaboration.TeamID.Valid {
		teamID := sql.NullString{String: team.ID, Valid: true}
		if err := d.collabRepo.SetTeam(ctx, collaboration.ID, teamID, collaboration.ProjectID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot assign collaboration team: %v", err)
			return "", errorx.Unknown
		}

		collaboration.TeamID = teamID
	}

	fromState := collaboration.State
	toState := fromState
	if next, ok := entity.JoinedState(fromState); ok {
		toState = next
	}

	if err := d.collabRepo.UpdateState(ctx, collaboration.ID, toState, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update collaboration state: %v", err)
		return "", errorx.Unknown
	}

	err = d.recordHistory(ctx, collaboration.ID, member.UserID, entity.ActionJoin, fromState, toState)
	if err != nil {
		return "", err
	}

	collaboration.State = toState
	return toState, nil
}

func (d *collaborationDomain) Endorse(
	ctx context.Context, req *model.EndorseCollaborationRequest,
) (*model.EndorseCollaborationResponse, error) {
	collaboration, collaborator, err := d.getCollaborator(ctx, req.CollaborationID)
	if err != nil {
		return nil, err
	}

	if collaborator.Endorsed() {
		return nil, errorx.New(errorx.BadRequest, "You already endorsed this collaboration")
	}

	if !endorsableState(collaboration.State, collaborator.Role) {
		return nil, errorx.New(errorx.Unavailable, "Collaboration cannot be endorsed now")
	}

	team, err := d.teamRepo.GetByID(ctx, collaboration.TeamID.String)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	workflow, err := d.workflowRepo.GetCollaborationWorkflow(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration workflow: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	now := xcontext.Now(ctx)
	endorsement := sql.NullTime{Time: now, Valid: true}
	if err := d.collaboratorRepo.SetEndorsement(ctx, collaborator.ID, endorsement, false); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set endorsement: %v", err)
		return nil, errorx.Unknown
	}

	collaborators, err := d.collaboratorRepo.GetListByCollaborationID(ctx, collaboration.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaborators: %v", err)
		return nil, errorx.Unknown
	}

	fromState := collaboration.State
	toState := fromState
	if allEndorsed(collaborators, collaborator.Role) {
		toState, err = nextStateAfterEndorse(ctx, fromState, collaborator.Role, workflow)
		if err != nil {
			return nil, err
		}
	}

	if err := d.collabRepo.UpdateState(ctx, collaboration.ID, toState, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update collaboration state: %v", err)
		return nil, errorx.Unknown
	}

	err = d.recordHistory(
		ctx, collaboration.ID, collaborator.UserID, entity.ActionEndorse, fromState, toState)
	if err != nil {
		return nil, err
	}

	if toState == entity.CollabComplete {
		if err := d.complete(ctx, collaboration, workflow); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.EndorseCollaborationResponse{State: string(toState)}, nil
}

func (d *collaborationDomain) Unendorse(
	ctx context.Context, req *model.UnendorseCollaborationRequest,
) (*model.UnendorseCollaborationResponse, error) {
	collaboration, collaborator, err := d.getCollaborator(ctx, req.CollaborationID)
	if err != nil {
		return nil, err
	}

	if !collaborator.Endorsed() {
		return nil, errorx.New(errorx.BadRequest, "You have not endorsed this collaboration")
	}

	if collaboration.State == entity.CollabComplete {
		return nil, errorx.New(errorx.Unavailable, "Completed collaborations cannot change")
	}

	fromState := collaboration.State
	var toState entity.CollaborationState
	var clearRoles []entity.CollaboratorRole

	switch collaborator.Role {
	case entity.RoleSubtitler:
		// A subtitler can only take back an endorsement before a reviewer
		// engages.
		if fromState != entity.CollabNeedsReviewer {
			return nil, errorx.New(errorx.Unavailable, "Collaboration cannot be unendorsed now")
		}

		toState = entity.CollabBeingSubtitled
		clearRoles = []entity.CollaboratorRole{entity.RoleSubtitler}

	case entity.RoleReviewer:
		if fromState != entity.CollabNeedsApprover && fromState != entity.CollabBeingReviewed {
			return nil, errorx.New(errorx.Unavailable, "Collaboration cannot be unendorsed now")
		}

		toState = entity.CollabBeingSubtitled
		clearRoles = []entity.CollaboratorRole{entity.RoleSubtitler, entity.RoleReviewer}

	case entity.RoleApprover:
		if fromState != entity.CollabBeingApproved {
			return nil, errorx.New(errorx.Unavailable, "Collaboration cannot be unendorsed now")
		}

		toState = entity.CollabBeingSubtitled
		clearRoles = []entity.CollaboratorRole{
			entity.RoleSubtitler, entity.RoleReviewer, entity.RoleApprover,
		}

	default:
		xcontext.Logger(ctx).Errorf("Invalid collaborator role %s", collaborator.Role)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	collaborators, err := d.collaboratorRepo.GetListByCollaborationID(ctx, collaboration.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaborators: %v", err)
		return nil, errorx.Unknown
	}

	for _, c := range collaborators {
		if !c.Endorsed() || !slices.Contains(clearRoles, c.Role) {
			continue
		}

		if err := d.collaboratorRepo.SetEndorsement(ctx, c.ID, sql.NullTime{}, false); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot clear endorsement: %v", err)
			return nil, errorx.Unknown
		}
	}

	now := xcontext.Now(ctx)
	if err := d.collabRepo.UpdateState(ctx, collaboration.ID, toState, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update collaboration state: %v", err)
		return nil, errorx.Unknown
	}

	err = d.recordHistory(
		ctx, collaboration.ID, collaborator.UserID, entity.ActionUnendorse, fromState, toState)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UnendorseCollaborationResponse{State: string(toState)}, nil
}

func (d *collaborationDomain) Leave(
	ctx context.Context, req *model.LeaveCollaborationRequest,
) (*model.LeaveCollaborationResponse, error) {
	collaboration, collaborator, err := d.getCollaborator(ctx, req.CollaborationID)
	if err != nil {
		return nil, err
	}

	if collaboration.State == entity.CollabComplete {
		return nil, errorx.New(errorx.Unavailable, "Completed collaborations cannot change")
	}

	if collaborator.Endorsed() {
		return nil, errorx.New(errorx.BadRequest, "Take back your endorsement before leaving")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.collaboratorRepo.Delete(ctx, collaborator.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete collaborator: %v", err)
		return nil, errorx.Unknown
	}

	collaborators, err := d.collaboratorRepo.GetListByCollaborationID(ctx, collaboration.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaborators: %v", err)
		return nil, errorx.Unknown
	}

	remaining := false
	for _, c := range collaborators {
		if c.ID != collaborator.ID && c.Role == collaborator.Role {
			remaining = true
			break
		}
	}

	fromState := collaboration.State
	toState := fromState
	if !remaining {
		if needsState, ok := vacatedState(fromState, collaborator.Role); ok {
			toState = needsState
		}
	}

	now := xcontext.Now(ctx)
	if err := d.collabRepo.UpdateState(ctx, collaboration.ID, toState, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update collaboration state: %v", err)
		return nil, errorx.Unknown
	}

	err = d.recordHistory(
		ctx, collaboration.ID, collaborator.UserID, entity.ActionLeave, fromState, toState)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.LeaveCollaborationResponse{State: string(toState)}, nil
}

func (d *collaborationDomain) AddNote(
	ctx context.Context, req *model.AddCollaborationNoteRequest,
) (*model.AddCollaborationNoteResponse, error) {
	if req.Body == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty note")
	}

	collaboration, err := d.collabRepo.GetByID(ctx, req.CollaborationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found collaboration")
		}

		xcontext.Logger(ctx).Errorf("Cannot get collaboration: %v", err)
		return nil, errorx.Unknown
	}

	video, err := d.teamVideoRepo.GetByID(ctx, collaboration.TeamVideoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return nil, errorx.Unknown
	}

	// Notes are open to the unit's whole team, collaborator or not.
	_, member, err := d.eligibleMembership(ctx, video, collaboration.TeamID)
	if err != nil {
		return nil, err
	}

	note := &entity.CollaborationNote{
		Base:            entity.Base{ID: uuid.NewString()},
		CollaborationID: collaboration.ID,
		UserID:          member.UserID,
		Body:            req.Body,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.noteRepo.Create(ctx, note); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create note: %v", err)
		return nil, errorx.Unknown
	}

	err = d.recordHistory(
		ctx, collaboration.ID, member.UserID, entity.ActionAddNote,
		collaboration.State, collaboration.State)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AddCollaborationNoteResponse{ID: note.ID}, nil
}

func (d *collaborationDomain) Get(
	ctx context.Context, req *model.GetCollaborationRequest,
) (*model.GetCollaborationResponse, error) {
	collaboration, err := d.collabRepo.GetByID(ctx, req.CollaborationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found collaboration")
		}

		xcontext.Logger(ctx).Errorf("Cannot get collaboration: %v", err)
		return nil, errorx.Unknown
	}

	collaborators, err := d.collaboratorRepo.GetListByCollaborationID(ctx, collaboration.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaborators: %v", err)
		return nil, errorx.Unknown
	}

	notes, err := d.noteRepo.GetListByCollaborationID(ctx, collaboration.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notes: %v", err)
		return nil, errorx.Unknown
	}

	history, err := d.historyRepo.GetListByCollaborationID(ctx, collaboration.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get history: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetCollaborationResponse{
		Collaboration: convertCollaboration(collaboration, collaborators),
	}

	for _, note := range notes {
		resp.Notes = append(resp.Notes, model.CollaborationNote{
			ID:        note.ID,
			UserID:    note.UserID,
			Body:      note.Body,
			CreatedAt: note.CreatedAt.Format(time.RFC3339),
		})
	}

	for _, record := range history {
		h := model.CollaborationHistory{
			Action:    string(record.Action),
			FromState: string(record.FromState),
			ToState:   string(record.ToState),
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		}

		if record.UserID.Valid {
			h.UserID = record.UserID.String
		}

		resp.History = append(resp.History, h)
	}

	return resp, nil
}

// complete runs the side effects of a collaboration reaching its end state.
// The billing record is written at most once per video and language pair;
// completing again only refreshes the original-language flag.
func (d *collaborationDomain) complete(
	ctx context.Context,
	collaboration *entity.Collaboration,
	workflow *entity.CollaborationWorkflow,
) error {
	if err := d.collaboratorRepo.MarkAllComplete(ctx, collaboration.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark collaborators complete: %v", err)
		return errorx.Unknown
	}

	video, err := d.teamVideoRepo.GetByID(ctx, collaboration.TeamVideoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return errorx.Unknown
	}

	if workflow.OnCompletePublishLatest {
		if err := d.publishLatestVersion(ctx, video, collaboration.LanguageCode); err != nil {
			return err
		}
	}

	record := &entity.BillingRecord{
		Base:             entity.Base{ID: uuid.NewString()},
		TeamID:           workflow.TeamID,
		VideoID:          video.VideoID,
		LanguageCode:     collaboration.LanguageCode,
		MinutesProcessed: float64(video.DurationSeconds) / 60,
		WasOriginal:      collaboration.LanguageCode == video.PrimaryAudioLanguageCode,
		UserID:           sql.NullString{String: xcontext.RequestUserID(ctx), Valid: true},
		Source:           "collaboration",
		ProcessedDate:    xcontext.Now(ctx),
	}

	created, err := d.billingRepo.Create(ctx, record)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create billing record: %v", err)
		return errorx.Unknown
	}

	if !created {
		err := d.billingRepo.UpdateWasOriginal(
			ctx, record.VideoID, record.LanguageCode, record.WasOriginal)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot refresh billing record: %v", err)
			return errorx.Unknown
		}
	}

	if workflow.OnCompleteNotifyManagers {
		event := model.CollaborationCompleteEvent{
			CollaborationID: collaboration.ID,
			TeamID:          workflow.TeamID,
			VideoID:         video.VideoID,
			LanguageCode:    collaboration.LanguageCode,
		}

		b, err := json.Marshal(event)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal complete event: %v", err)
			return errorx.Unknown
		}

		pack := &pubsub.Pack{Key: []byte(collaboration.ID), Msg: b}
		if err := d.publisher.Publish(ctx, notificationTopic, pack); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish complete event: %v", err)
		}
	}

	return nil
}

func (d *collaborationDomain) publishLatestVersion(
	ctx context.Context, video *entity.TeamVideo, languageCode string,
) error {
	language, err := d.subtitleRepo.GetLanguage(ctx, video.VideoID, languageCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get subtitle language: %v", err)
		return errorx.Unknown
	}

	version, err := d.subtitleRepo.GetLatestVersion(ctx, language.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get latest version: %v", err)
		return errorx.Unknown
	}

	if err := d.subtitleRepo.PublishVersion(ctx, version.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish version: %v", err)
		return errorx.Unknown
	}

	return nil
}

// eligibleMembership finds the team through which the requesting user may
// work on a video. When the collaboration already belongs to a team, only
// that team qualifies. Otherwise the video's owner team is tried first, then
// teams its project was shared with.
func (d *collaborationDomain) eligibleMembership(
	ctx context.Context, video *entity.TeamVideo, owner sql.NullString,
) (*entity.Team, *entity.TeamMember, error) {
	userID := xcontext.RequestUserID(ctx)

	candidates := []string{video.TeamID}
	if owner.Valid {
		candidates = []string{owner.String}
	} else if video.ProjectID != "" {
		shared, err := d.projectRepo.GetSharedTeamIDs(ctx, video.ProjectID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get shared teams: %v", err)
			return nil, nil, errorx.Unknown
		}

		candidates = append(candidates, shared...)
	}

	for _, teamID := range candidates {
		member, err := d.teamMemberRepo.Get(ctx, teamID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}

			xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
			return nil, nil, errorx.Unknown
		}

		team, err := d.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
			return nil, nil, errorx.Unknown
		}

		return team, member, nil
	}

	return nil, nil, errorx.New(errorx.PermissionDenied, "Permission denied")
}

func (d *collaborationDomain) memberLanguages(ctx context.Context, teamID, userID string) ([]string, error) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	teamLanguages, err := d.collabLangRepo.GetCodesByTeamID(ctx, teamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get collaboration languages: %v", err)
		return nil, errorx.Unknown
	}

	return common.LanguagesForMember(user.Languages, teamLanguages), nil
}

func (d *collaborationDomain) getCollaborator(
	ctx context.Context, collaborationID string,
) (*entity.Collaboration, *entity.Collaborator, error) {
	collaboration, err := d.collabRepo.GetByID(ctx, collaborationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errorx.New(errorx.NotFound, "Not found collaboration")
		}

		xcontext.Logger(ctx).Errorf("Cannot get collaboration: %v", err)
		return nil, nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	collaborator, err := d.collaboratorRepo.Get(ctx, collaboration.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errorx.New(errorx.PermissionDenied, "You do not collaborate on this video")
		}

		xcontext.Logger(ctx).Errorf("Cannot get collaborator: %v", err)
		return nil, nil, errorx.Unknown
	}

	return collaboration, collaborator, nil
}

func (d *collaborationDomain) recordHistory(
	ctx context.Context,
	collaborationID, userID string,
	action entity.CollaborationAction,
	fromState, toState entity.CollaborationState,
) error {
	err := d.historyRepo.Create(ctx, &entity.CollaborationHistory{
		Base:            entity.Base{ID: uuid.NewString()},
		CollaborationID: collaborationID,
		UserID:          sql.NullString{String: userID, Valid: userID != ""},
		Action:          action,
		FromState:       fromState,
		ToState:         toState,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record history: %v", err)
		return errorx.Unknown
	}

	return nil
}

// joinableRole decides whether the collaboration accepts the member in its
// current state and which role they would take. A second collaborator may
// join an active tier only when the workflow allows more than one person in
// that role, and the approval tier always requires an approving role.
func joinableRole(
	state entity.CollaborationState,
	workflow *entity.CollaborationWorkflow,
	member *entity.TeamMember,
) (entity.CollaboratorRole, bool) {
	switch state {
	case entity.CollabNeedsSubtitler:
		return entity.RoleSubtitler, true
	case entity.CollabBeingSubtitled:
		return entity.RoleSubtitler, !workflow.Only1Subtitler
	case entity.CollabNeedsReviewer:
		return entity.RoleReviewer, true
	case entity.CollabBeingReviewed:
		return entity.RoleReviewer, !workflow.Only1Reviewer
	case entity.CollabNeedsApprover:
		return entity.RoleApprover, workflow.MemberCanApprove(*member)
	case entity.CollabBeingApproved:
		return entity.RoleApprover, workflow.MemberCanApprove(*member) && !workflow.Only1Approver
	}

	return "", false
}

func endorsableState(state entity.CollaborationState, role entity.CollaboratorRole) bool {
	switch role {
	case entity.RoleSubtitler:
		return state == entity.CollabBeingSubtitled
	case entity.RoleReviewer:
		return state == entity.CollabBeingReviewed
	case entity.RoleApprover:
		return state == entity.CollabBeingApproved
	}

	return false
}

func allEndorsed(collaborators []entity.Collaborator, role entity.CollaboratorRole) bool {
	for _, c := range collaborators {
		if c.Role == role && !c.Endorsed() {
			return false
		}
	}

	return true
}

// nextStateAfterEndorse picks the state entered once every collaborator of
// the active role has endorsed. A role that should not exist under the
// team's completion policy means the stored state diverged from the policy.
func nextStateAfterEndorse(
	ctx context.Context,
	state entity.CollaborationState,
	role entity.CollaboratorRole,
	workflow *entity.CollaborationWorkflow,
) (entity.CollaborationState, error) {
	switch {
	case state == entity.CollabBeingSubtitled && role == entity.RoleSubtitler:
		if workflow.CompletionPolicy == entity.CompletionAnyone {
			return entity.CollabComplete, nil
		}

		return entity.CollabNeedsReviewer, nil

	case state == entity.CollabBeingReviewed && role == entity.RoleReviewer:
		switch workflow.CompletionPolicy {
		case entity.CompletionReviewer:
			return entity.CollabComplete, nil
		case entity.CompletionApprover:
			return entity.CollabNeedsApprover, nil
		}

	case state == entity.CollabBeingApproved && role == entity.RoleApprover:
		if workflow.CompletionPolicy == entity.CompletionApprover {
			return entity.CollabComplete, nil
		}
	}

	xcontext.Logger(ctx).Errorf(
		"Collaboration state %s with role %s diverged from completion policy %s",
		state, role, workflow.CompletionPolicy)
	return "", errorx.Unknown
}

// vacatedState maps an active tier back to its waiting state when the last
// collaborator of the tier leaves.
func vacatedState(
	state entity.CollaborationState, role entity.CollaboratorRole,
) (entity.CollaborationState, bool) {
	switch {
	case state == entity.CollabBeingSubtitled && role == entity.RoleSubtitler:
		return entity.CollabNeedsSubtitler, true
	case state == entity.CollabBeingReviewed && role == entity.RoleReviewer:
		return entity.CollabNeedsReviewer, true
	case state == entity.CollabBeingApproved && role == entity.RoleApprover:
		return entity.CollabNeedsApprover, true
	}

	return "", false
}

func convertCollaboration(
	collaboration *entity.Collaboration, collaborators []entity.Collaborator,
) model.Collaboration {
	result := model.Collaboration{
		ID:               collaboration.ID,
		TeamVideoID:      collaboration.TeamVideoID,
		LanguageCode:     collaboration.LanguageCode,
		State:            string(collaboration.State),
		LastActivityDate: collaboration.LastActivityDate.Format(time.RFC3339),
	}

	if collaboration.TeamID.Valid {
		result.TeamID = collaboration.TeamID.String
	}

	if collaboration.ProjectID.Valid {
		result.ProjectID = collaboration.ProjectID.String
	}

	for _, c := range collaborators {
		converted := model.Collaborator{
			UserID:    c.UserID,
			Role:      string(c.Role),
			StartDate: c.StartDate.Format(time.RFC3339),
			Complete:  c.Complete,
		}

		if c.EndorsementDate.Valid {
			converted.EndorsementDate = c.EndorsementDate.Time.Format(time.RFC3339)
		}

		result.Collaborators = append(result.Collaborators, converted)
	}

	return result
}
