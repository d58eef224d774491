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
	"github.com/ujdhesa/unisubs/pkg/enum"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/pubsub"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type TaskDomain interface {
	GetList(ctx context.Context, req *model.GetTasksRequest) (*model.GetTasksResponse, error)
	Assign(ctx context.Context, req *model.AssignTaskRequest) (*model.AssignTaskResponse, error)
	Unassign(ctx context.Context, req *model.UnassignTaskRequest) (*model.UnassignTaskResponse, error)
	Complete(ctx context.Context, req *model.CompleteTaskRequest) (*model.CompleteTaskResponse, error)
	Delete(ctx context.Context, req *model.DeleteTaskRequest) (*model.DeleteTaskResponse, error)
}

type taskDomain struct {
	teamRepo       repository.TeamRepository
	teamMemberRepo repository.TeamMemberRepository
	teamVideoRepo  repository.TeamVideoRepository
	workflowRepo   repository.WorkflowRepository
	taskRepo       repository.TaskRepository
	langPrefRepo   repository.TeamLanguagePreferenceRepository
	subtitleRepo   repository.SubtitleRepository
	billingRepo    repository.BillingRecordRepository
	narrowingRepo  repository.MembershipNarrowingRepository
	roleVerifier   *common.TeamRoleVerifier
	publisher      pubsub.Publisher
}

func NewTaskDomain(
	teamRepo repository.TeamRepository,
	teamMemberRepo repository.TeamMemberRepository,
	teamVideoRepo repository.TeamVideoRepository,
	workflowRepo repository.WorkflowRepository,
	taskRepo repository.TaskRepository,
	langPrefRepo repository.TeamLanguagePreferenceRepository,
	subtitleRepo repository.SubtitleRepository,
	billingRepo repository.BillingRecordRepository,
	narrowingRepo repository.MembershipNarrowingRepository,
	publisher pubsub.Publisher,
) *taskDomain {
	return &taskDomain{
		teamRepo:       teamRepo,
		teamMemberRepo: teamMemberRepo,
		teamVideoRepo:  teamVideoRepo,
		workflowRepo:   workflowRepo,
		taskRepo:       taskRepo,
		langPrefRepo:   langPrefRepo,
		subtitleRepo:   subtitleRepo,
		billingRepo:    billingRepo,
		narrowingRepo:  narrowingRepo,
		roleVerifier:   common.NewTeamRoleVerifier(teamMemberRepo),
		publisher:      publisher,
	}
}

func (d *taskDomain) GetList(
	ctx context.Context, req *model.GetTasksRequest,
) (*model.GetTasksResponse, error) {
	team, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.roleVerifier.Member(ctx, team.ID); err != nil {
		return nil, err
	}

	var taskType entity.TaskType
	if req.Type != "" {
		taskType, err = enum.ToEnum[entity.TaskType](req.Type)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid task type %s", req.Type)
		}
	}

	tasks, err := d.taskRepo.GetOpenByTeamID(ctx, team.ID, taskType)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tasks: %v", err)
		return nil, errorx.Unknown
	}

	now := xcontext.Now(ctx)
	resp := &model.GetTasksResponse{}
	for i := range tasks {
		task := &tasks[i]
		if task.Expired(now) {
			if err := d.expire(ctx, task); err != nil {
				return nil, err
			}
		}

		resp.Tasks = append(resp.Tasks, convertTask(task))
	}

	return resp, nil
}

func (d *taskDomain) Assign(
	ctx context.Context, req *model.AssignTaskRequest,
) (*model.AssignTaskResponse, error) {
	task, err := d.getOpenTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	now := xcontext.Now(ctx)
	if task.Expired(now) {
		if err := d.expire(ctx, task); err != nil {
			return nil, err
		}
	}

	assigneeID := req.UserID
	if assigneeID == "" {
		assigneeID = xcontext.RequestUserID(ctx)
	}

	// Assigning someone else requires a managing role.
	if assigneeID != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, task.TeamID, entity.ManagerRoles...); err != nil {
			return nil, err
		}
	}

	if task.AssigneeUserID.Valid {
		return nil, errorx.New(errorx.Unavailable, "Task is already assigned")
	}

	member, err := d.teamMemberRepo.Get(ctx, task.TeamID, assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "Assignee is not a team member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return nil, errorx.Unknown
	}

	team, err := d.teamRepo.GetByID(ctx, task.TeamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	workflow, err := d.workflowRepo.GetTaskWorkflow(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get task workflow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.verifyAssignable(ctx, task, workflow, member); err != nil {
		return nil, err
	}

	if err := d.verifyNarrowings(ctx, task, member); err != nil {
		return nil, err
	}

	if team.MaxTasksPerMember.Valid {
		count, err := d.taskRepo.CountOpenByAssignee(ctx, team.ID, assigneeID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count assigned tasks: %v", err)
			return nil, errorx.Unknown
		}

		if count >= team.MaxTasksPerMember.Int64 {
			return nil, errorx.New(errorx.Unavailable, "Assignee has too many open tasks")
		}
	}

	var expiration sql.NullTime
	if team.TaskExpiration.Valid {
		expiration = sql.NullTime{
			Time:  now.Add(time.Duration(team.TaskExpiration.Int64) * 24 * time.Hour),
			Valid: true,
		}
	}

	assignee := sql.NullString{String: assigneeID, Valid: true}
	if err := d.taskRepo.SetAssignee(ctx, task.ID, assignee, expiration); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot assign task: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.AssignTaskResponse{}
	if expiration.Valid {
		resp.ExpirationDate = expiration.Time.Format(time.RFC3339)
	}

	return resp, nil
}

func (d *taskDomain) Unassign(
	ctx context.Context, req *model.UnassignTaskRequest,
) (*model.UnassignTaskResponse, error) {
	task, err := d.getOpenTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	if !task.AssigneeUserID.Valid {
		return nil, errorx.New(errorx.BadRequest, "Task is not assigned")
	}

	if task.AssigneeUserID.String != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, task.TeamID, entity.ManagerRoles...); err != nil {
			return nil, err
		}
	}

	err = d.taskRepo.SetAssignee(ctx, task.ID, sql.NullString{}, sql.NullTime{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unassign task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnassignTaskResponse{}, nil
}

func (d *taskDomain) Complete(
	ctx context.Context, req *model.CompleteTaskRequest,
) (*model.CompleteTaskResponse, error) {
	task, err := d.getOpenTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if !task.AssigneeUserID.Valid || task.AssigneeUserID.String != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the assignee can complete a task")
	}

	video, err := d.teamVideoRepo.GetByID(ctx, task.TeamVideoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
		return nil, errorx.Unknown
	}

	workflow, err := d.workflowRepo.GetTaskWorkflow(ctx, task.TeamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get task workflow: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var followup *entity.Task
	switch task.Type {
	case entity.TaskSubtitle, entity.TaskTranslate:
		followup, err = d.completeSubtitling(ctx, task, video, workflow)

	case entity.TaskReview:
		followup, err = d.completeReview(ctx, task, video, workflow, req.Approved)

	case entity.TaskApprove:
		followup, err = d.completeApprove(ctx, task, video, workflow, req.Approved)

	default:
		xcontext.Logger(ctx).Errorf("Invalid task type %s", task.Type)
		err = errorx.Unknown
	}
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	event := model.TaskCompleteEvent{
		TaskID:       task.ID,
		TeamID:       task.TeamID,
		VideoID:      video.VideoID,
		LanguageCode: task.LanguageCode,
		Type:         string(task.Type),
		Approved:     req.Approved,
	}

	if b, err := json.Marshal(event); err == nil {
		pack := &pubsub.Pack{Key: []byte(task.ID), Msg: b}
		if err := d.publisher.Publish(ctx, notificationTopic, pack); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish task event: %v", err)
		}
	}

	resp := &model.CompleteTaskResponse{}
	if followup != nil {
		resp.FollowupTaskID = followup.ID
	}

	return resp, nil
}

func (d *taskDomain) Delete(
	ctx context.Context, req *model.DeleteTaskRequest,
) (*model.DeleteTaskResponse, error) {
	task, err := d.getOpenTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	if err := d.roleVerifier.Verify(ctx, task.TeamID, entity.ManagerRoles...); err != nil {
		return nil, err
	}

	if err := d.taskRepo.MarkDeleted(ctx, task.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteTaskResponse{}, nil
}

// completeSubtitling finishes a subtitle or translate task. The produced
// subtitle version stays private while a review or approval step follows,
// otherwise it is published right away.
func (d *taskDomain) completeSubtitling(
	ctx context.Context,
	task *entity.Task,
	video *entity.TeamVideo,
	workflow *entity.TaskWorkflow,
) (*entity.Task, error) {
	language, err := d.subtitleRepo.UpsertLanguage(ctx, video.VideoID, task.LanguageCode, true)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert subtitle language: %v", err)
		return nil, errorx.Unknown
	}

	number := 1
	var previous *entity.SubtitleVersion
	if latest, err := d.subtitleRepo.GetLatestVersion(ctx, language.ID); err == nil {
		number = latest.Number + 1
		previous = latest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get latest version: %v", err)
		return nil, errorx.Unknown
	}

	// A member who could approve the work anyway publishes edits to an
	// already public subtitle directly, with no review or approval round.
	fastPath := false
	if previous != nil && previous.Visibility == "public" {
		member, err := d.teamMemberRepo.Get(ctx, task.TeamID, task.AssigneeUserID.String)
		if err == nil && workflow.MemberCanApprove(*member) {
			fastPath = true
		}
	}

	visibility := "public"
	if !fastPath && (workflow.NeedsReview() || workflow.NeedsApproval()) {
		visibility = "private"
	}

	version := &entity.SubtitleVersion{
		Base:               entity.Base{ID: uuid.NewString()},
		SubtitleLanguageID: language.ID,
		Number:             number,
		AuthorID:           task.AssigneeUserID,
		Visibility:         visibility,
	}

	if err := d.subtitleRepo.CreateVersion(ctx, version); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create subtitle version: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.markCompleted(ctx, task, "", version.ID); err != nil {
		return nil, err
	}

	var followup *entity.Task
	switch {
	case fastPath:
		err = d.finalize(ctx, task, video, version.ID)
	case workflow.NeedsReview():
		followup, err = d.createFollowup(ctx, task, entity.TaskReview, version.ID)
	case workflow.NeedsApproval():
		followup, err = d.createFollowup(ctx, task, entity.TaskApprove, version.ID)
	default:
		err = d.finalize(ctx, task, video, version.ID)
	}
	if err != nil {
		return nil, err
	}

	if task.Type == entity.TaskSubtitle && workflow.AutocreateTranslate {
		if err := d.autocreateTranslations(ctx, task, video); err != nil {
			return nil, err
		}
	}

	return followup, nil
}

func (d *taskDomain) completeReview(
	ctx context.Context,
	task *entity.Task,
	video *entity.TeamVideo,
	workflow *entity.TaskWorkflow,
	verdict string,
) (*entity.Task, error) {
	approved, err := parseVerdict(verdict)
	if err != nil {
		return nil, err
	}

	if err := d.markCompleted(ctx, task, approved, versionIDOf(task)); err != nil {
		return nil, err
	}

	if approved == entity.TaskApprovedApproved {
		if workflow.NeedsApproval() {
			return d.createFollowup(ctx, task, entity.TaskApprove, versionIDOf(task))
		}

		return nil, d.finalize(ctx, task, video, versionIDOf(task))
	}

	return d.sendBack(ctx, task, video)
}

func (d *taskDomain) completeApprove(
	ctx context.Context,
	task *entity.Task,
	video *entity.TeamVideo,
	workflow *entity.TaskWorkflow,
	verdict string,
) (*entity.Task, error) {
	approved, err := parseVerdict(verdict)
	if err != nil {
		return nil, err
	}

	if err := d.markCompleted(ctx, task, approved, versionIDOf(task)); err != nil {
		return nil, err
	}

	if approved == entity.TaskApprovedApproved {
		return nil, d.finalize(ctx, task, video, versionIDOf(task))
	}

	// Rejected approval goes back to review when the workflow has one,
	// otherwise straight back to the subtitler.
	if workflow.NeedsReview() {
		followup, err := d.createFollowup(ctx, task, entity.TaskReview, versionIDOf(task))
		if err != nil {
			return nil, err
		}

		if err := d.reassignToLastCompleter(ctx, followup, entity.TaskReview); err != nil {
			return nil, err
		}

		return followup, nil
	}

	return d.sendBack(ctx, task, video)
}

// sendBack creates a new subtitling task after a rejection. The task type
// depends on whether the language is the video's original one, and the work
// returns to whoever last did it if they are still on the team.
func (d *taskDomain) sendBack(
	ctx context.Context, task *entity.Task, video *entity.TeamVideo,
) (*entity.Task, error) {
	backType := entity.TaskTranslate
	if task.LanguageCode == video.PrimaryAudioLanguageCode {
		backType = entity.TaskSubtitle
	}

	followup, err := d.createFollowup(ctx, task, backType, versionIDOf(task))
	if err != nil {
		return nil, err
	}

	if err := d.reassignToLastCompleter(ctx, followup, backType); err != nil {
		return nil, err
	}

	return followup, nil
}

func (d *taskDomain) reassignToLastCompleter(
	ctx context.Context, task *entity.Task, taskType entity.TaskType,
) error {
	last, err := d.taskRepo.GetLastCompleted(ctx, task.TeamVideoID, taskType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get last completed task: %v", err)
		return errorx.Unknown
	}

	if !last.AssigneeUserID.Valid {
		return nil
	}

	_, err = d.teamMemberRepo.Get(ctx, task.TeamID, last.AssigneeUserID.String)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The previous author left the team, leave the task open.
			return nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return errorx.Unknown
	}

	if err := d.taskRepo.SetAssignee(ctx, task.ID, last.AssigneeUserID, sql.NullTime{}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reassign task: %v", err)
		return errorx.Unknown
	}

	task.AssigneeUserID = last.AssigneeUserID
	return nil
}

func (d *taskDomain) autocreateTranslations(
	ctx context.Context, task *entity.Task, video *entity.TeamVideo,
) error {
	languages, err := d.langPrefRepo.GetCodesByTeamID(ctx, task.TeamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get language preferences: %v", err)
		return errorx.Unknown
	}

	// Any earlier task for a language blocks re-creation, completed and
	// sent-back rounds included.
	existing, err := d.taskRepo.GetByTeamVideo(ctx, video.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tasks: %v", err)
		return errorx.Unknown
	}

	busyCodes := make([]string, 0, len(existing))
	for _, t := range existing {
		busyCodes = append(busyCodes, t.LanguageCode)
	}

	subtitleLanguages, err := d.subtitleRepo.GetLanguagesByVideo(ctx, video.VideoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get subtitle languages: %v", err)
		return errorx.Unknown
	}

	for _, language := range subtitleLanguages {
		if language.SubtitlesComplete {
			busyCodes = append(busyCodes, language.LanguageCode)
		}
	}

	for _, code := range languages {
		if code == video.PrimaryAudioLanguageCode || slices.Contains(busyCodes, code) {
			continue
		}

		err := d.taskRepo.Create(ctx, &entity.Task{
			Base:         entity.Base{ID: uuid.NewString()},
			TeamID:       task.TeamID,
			TeamVideoID:  video.ID,
			LanguageCode: code,
			Type:         entity.TaskTranslate,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot autocreate translate task: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

// finalize publishes the final version and writes the billing record once
// the last workflow step of a language finishes.
func (d *taskDomain) finalize(
	ctx context.Context, task *entity.Task, video *entity.TeamVideo, versionID string,
) error {
	if versionID != "" {
		if err := d.subtitleRepo.PublishVersion(ctx, versionID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot publish version: %v", err)
			return errorx.Unknown
		}
	}

	record := &entity.BillingRecord{
		Base:             entity.Base{ID: uuid.NewString()},
		TeamID:           task.TeamID,
		VideoID:          video.VideoID,
		LanguageCode:     task.LanguageCode,
		SubtitleVersionID: sql.NullString{String: versionID, Valid: versionID != ""},
		MinutesProcessed: float64(video.DurationSeconds) / 60,
		WasOriginal:      task.LanguageCode == video.PrimaryAudioLanguageCode,
		UserID:           task.AssigneeUserID,
		Source:           "tasks",
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

	return nil
}

func (d *taskDomain) markCompleted(
	ctx context.Context, task *entity.Task, approved entity.TaskApproved, versionID string,
) error {
	task.CompletedDate = sql.NullTime{Time: xcontext.Now(ctx), Valid: true}
	task.Approved = sql.NullString{String: string(approved), Valid: approved != ""}
	task.SubtitleVersionID = sql.NullString{String: versionID, Valid: versionID != ""}

	if err := d.taskRepo.Complete(ctx, task.ID, task); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete task: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *taskDomain) createFollowup(
	ctx context.Context, task *entity.Task, taskType entity.TaskType, versionID string,
) (*entity.Task, error) {
	followup := &entity.Task{
		Base:              entity.Base{ID: uuid.NewString()},
		TeamID:            task.TeamID,
		TeamVideoID:       task.TeamVideoID,
		LanguageCode:      task.LanguageCode,
		Type:              taskType,
		SubtitleVersionID: sql.NullString{String: versionID, Valid: versionID != ""},
		Priority:          task.Priority,
	}

	if err := d.taskRepo.Create(ctx, followup); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create followup task: %v", err)
		return nil, errorx.Unknown
	}

	return followup, nil
}

func (d *taskDomain) verifyAssignable(
	ctx context.Context,
	task *entity.Task,
	workflow *entity.TaskWorkflow,
	member *entity.TeamMember,
) error {
	switch task.Type {
	case entity.TaskReview:
		isOwnWork, err := d.isAuthor(ctx, task, member.UserID)
		if err != nil {
			return err
		}

		if !common.CanPerformReview(workflow, *member, isOwnWork) {
			return errorx.New(errorx.PermissionDenied, "You cannot review this video")
		}

	case entity.TaskApprove:
		if !common.CanPerformApprove(workflow, *member) {
			return errorx.New(errorx.PermissionDenied, "You cannot approve this video")
		}
	}

	return nil
}

// verifyNarrowings checks a narrowed membership against the task. A member
// with language narrowings only takes tasks in one of those languages, a
// member with project narrowings only takes tasks of videos in one of those
// projects.
func (d *taskDomain) verifyNarrowings(
	ctx context.Context, task *entity.Task, member *entity.TeamMember,
) error {
	narrowings, err := d.narrowingRepo.GetList(ctx, task.TeamID, member.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get membership narrowings: %v", err)
		return errorx.Unknown
	}

	if len(narrowings) == 0 {
		return nil
	}

	var languages, projects []string
	for _, narrowing := range narrowings {
		if narrowing.LanguageCode.Valid {
			languages = append(languages, narrowing.LanguageCode.String)
		}

		if narrowing.ProjectID.Valid {
			projects = append(projects, narrowing.ProjectID.String)
		}
	}

	if len(languages) > 0 && !slices.Contains(languages, task.LanguageCode) {
		return errorx.New(errorx.PermissionDenied, "Assignee does not work in this language")
	}

	if len(projects) > 0 {
		video, err := d.teamVideoRepo.GetByID(ctx, task.TeamVideoID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get team video: %v", err)
			return errorx.Unknown
		}

		if !slices.Contains(projects, video.ProjectID) {
			return errorx.New(errorx.PermissionDenied, "Assignee does not work in this project")
		}
	}

	return nil
}

func (d *taskDomain) isAuthor(ctx context.Context, task *entity.Task, userID string) (bool, error) {
	if !task.SubtitleVersionID.Valid {
		return false, nil
	}

	var version entity.SubtitleVersion
	err := xcontext.DB(ctx).Take(&version, "id=?", task.SubtitleVersionID.String).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get subtitle version: %v", err)
		return false, errorx.Unknown
	}

	return version.AuthorID.Valid && version.AuthorID.String == userID, nil
}

func (d *taskDomain) expire(ctx context.Context, task *entity.Task) error {
	err := d.taskRepo.SetAssignee(ctx, task.ID, sql.NullString{}, sql.NullTime{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire task: %v", err)
		return errorx.Unknown
	}

	task.AssigneeUserID = sql.NullString{}
	task.ExpirationDate = sql.NullTime{}
	return nil
}

func (d *taskDomain) getOpenTask(ctx context.Context, id string) (*entity.Task, error) {
	task, err := d.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	if !task.Open() {
		return nil, errorx.New(errorx.Unavailable, "Task is no longer open")
	}

	return task, nil
}

func parseVerdict(verdict string) (entity.TaskApproved, error) {
	approved, err := enum.ToEnum[entity.TaskApproved](verdict)
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid verdict %s", verdict)
	}

	if approved != entity.TaskApprovedApproved && approved != entity.TaskApprovedRejected {
		return "", errorx.New(errorx.BadRequest, "Invalid verdict %s", verdict)
	}

	return approved, nil
}

func versionIDOf(task *entity.Task) string {
	if task.SubtitleVersionID.Valid {
		return task.SubtitleVersionID.String
	}

	return ""
}

func convertTask(task *entity.Task) model.Task {
	result := model.Task{
		ID:           task.ID,
		TeamID:       task.TeamID,
		TeamVideoID:  task.TeamVideoID,
		LanguageCode: task.LanguageCode,
		Type:         string(task.Type),
		Priority:     task.Priority,
	}

	if task.AssigneeUserID.Valid {
		result.AssigneeUserID = task.AssigneeUserID.String
	}

	if task.Approved.Valid {
		result.Approved = task.Approved.String
	}

	if task.ExpirationDate.Valid {
		result.ExpirationDate = task.ExpirationDate.Time.Format(time.RFC3339)
	}

	if task.CompletedDate.Valid {
		result.CompletedDate = task.CompletedDate.Time.Format(time.RFC3339)
	}

	return result
}
