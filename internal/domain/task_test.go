package domain

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/testutil"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

func newTestTaskDomain() TaskDomain {
	return NewTaskDomain(
		repository.NewTeamRepository(&testutil.MockRedisClient{}),
		repository.NewTeamMemberRepository(),
		repository.NewTeamVideoRepository(),
		repository.NewWorkflowRepository(),
		repository.NewTaskRepository(),
		repository.NewTeamLanguagePreferenceRepository(),
		repository.NewSubtitleRepository(),
		repository.NewBillingRecordRepository(),
		repository.NewMembershipNarrowingRepository(),
		&testutil.MockPublisher{},
	)
}

func setTaskWorkflow(
	t *testing.T, ctx context.Context, teamID string,
	change func(workflow *entity.TaskWorkflow),
) {
	workflowRepo := repository.NewWorkflowRepository()
	workflow, err := workflowRepo.GetTaskWorkflow(ctx, teamID)
	require.NoError(t, err)

	change(workflow)
	require.NoError(t, workflowRepo.UpdateTaskWorkflow(ctx, teamID, workflow))
}

func createSubtitleTask(t *testing.T, ctx context.Context, id string) *entity.Task {
	task := &entity.Task{
		Base:         entity.Base{ID: id},
		TeamID:       testutil.Team2.ID,
		TeamVideoID:  testutil.Video2.ID,
		LanguageCode: testutil.Video2.PrimaryAudioLanguageCode,
		Type:         entity.TaskSubtitle,
	}
	require.NoError(t, repository.NewTaskRepository().Create(ctx, task))
	return task
}

func Test_taskDomain_FullScenario(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()
	taskRepo := repository.NewTaskRepository()

	setTaskWorkflow(t, ctx, testutil.Team2.ID, func(workflow *entity.TaskWorkflow) {
		workflow.AutocreateTranslate = true
		workflow.ReviewAllowed = entity.ReviewPeer
		workflow.ApproveAllowed = entity.ApproveManager
	})

	subtitleTask := createSubtitleTask(t, ctx, "subtitle1")

	// The contributor takes and finishes the subtitling step.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	assigned, err := taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: subtitleTask.ID})
	require.NoError(t, err)
	require.NotEmpty(t, assigned.ExpirationDate)

	completed, err := taskDomain.Complete(ctxUser2, &model.CompleteTaskRequest{TaskID: subtitleTask.ID})
	require.NoError(t, err)
	require.NotEmpty(t, completed.FollowupTaskID)

	review, err := taskRepo.GetByID(ctx, completed.FollowupTaskID)
	require.NoError(t, err)
	require.Equal(t, entity.TaskReview, review.Type)

	// Finishing the original subtitles spawned translate tasks for the
	// team's preferred languages.
	translations, err := taskRepo.GetOpenByTeamVideoLanguage(ctx, testutil.Video2.ID, "fr")
	require.NoError(t, err)
	require.Len(t, translations, 1)
	require.Equal(t, entity.TaskTranslate, translations[0].Type)

	// Nobody reviews their own work.
	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: review.ID})
	require.Equal(t, "You cannot review this video", err.Error())

	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: review.ID})
	require.NoError(t, err)

	// A rejected review sends the work back to the original subtitler.
	completed, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   review.ID,
		Approved: string(entity.TaskApprovedRejected),
	})
	require.NoError(t, err)

	sentBack, err := taskRepo.GetByID(ctx, completed.FollowupTaskID)
	require.NoError(t, err)
	require.Equal(t, entity.TaskSubtitle, sentBack.Type)
	require.True(t, sentBack.AssigneeUserID.Valid)
	require.Equal(t, testutil.User2.ID, sentBack.AssigneeUserID.String)

	// Round two of subtitling produces version 2 and a fresh review.
	completed, err = taskDomain.Complete(ctxUser2, &model.CompleteTaskRequest{TaskID: sentBack.ID})
	require.NoError(t, err)

	secondReview, err := taskRepo.GetByID(ctx, completed.FollowupTaskID)
	require.NoError(t, err)
	require.Equal(t, entity.TaskReview, secondReview.Type)

	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: secondReview.ID})
	require.NoError(t, err)
	completed, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   secondReview.ID,
		Approved: string(entity.TaskApprovedApproved),
	})
	require.NoError(t, err)

	approve, err := taskRepo.GetByID(ctx, completed.FollowupTaskID)
	require.NoError(t, err)
	require.Equal(t, entity.TaskApprove, approve.Type)

	// Approval is reserved to managing roles.
	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: approve.ID})
	require.Equal(t, "You cannot approve this video", err.Error())

	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: approve.ID})
	require.NoError(t, err)

	// A rejected approval returns to the last reviewer.
	completed, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   approve.ID,
		Approved: string(entity.TaskApprovedRejected),
	})
	require.NoError(t, err)

	thirdReview, err := taskRepo.GetByID(ctx, completed.FollowupTaskID)
	require.NoError(t, err)
	require.Equal(t, entity.TaskReview, thirdReview.Type)
	require.True(t, thirdReview.AssigneeUserID.Valid)
	require.Equal(t, testutil.User3.ID, thirdReview.AssigneeUserID.String)

	completed, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   thirdReview.ID,
		Approved: string(entity.TaskApprovedApproved),
	})
	require.NoError(t, err)

	secondApprove, err := taskRepo.GetByID(ctx, completed.FollowupTaskID)
	require.NoError(t, err)

	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: secondApprove.ID})
	require.NoError(t, err)
	completed, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   secondApprove.ID,
		Approved: string(entity.TaskApprovedApproved),
	})
	require.NoError(t, err)
	require.Empty(t, completed.FollowupTaskID)

	// The approved version went public.
	subtitleRepo := repository.NewSubtitleRepository()
	language, err := subtitleRepo.GetLanguage(ctx, testutil.Video2.VideoID, "en")
	require.NoError(t, err)

	version, err := subtitleRepo.GetLatestVersion(ctx, language.ID)
	require.NoError(t, err)
	require.Equal(t, 2, version.Number)
	require.Equal(t, "public", version.Visibility)

	// The full chain billed the pair exactly once.
	record, err := repository.NewBillingRecordRepository().Get(ctx, testutil.Video2.VideoID, "en")
	require.NoError(t, err)
	require.Equal(t, testutil.Team2.ID, record.TeamID)
	require.Equal(t, float64(5), record.MinutesProcessed)
	require.True(t, record.WasOriginal)
	require.Equal(t, "tasks", record.Source)
}

func Test_taskDomain_AssignLimits(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()
	taskRepo := repository.NewTaskRepository()

	first := createSubtitleTask(t, ctx, "task_limit1")

	second := &entity.Task{
		Base:         entity.Base{ID: "task_limit2"},
		TeamID:       testutil.Team2.ID,
		TeamVideoID:  testutil.Video2.ID,
		LanguageCode: "fr",
		Type:         entity.TaskTranslate,
	}
	require.NoError(t, taskRepo.Create(ctx, second))

	third := &entity.Task{
		Base:         entity.Base{ID: "task_limit3"},
		TeamID:       testutil.Team2.ID,
		TeamVideoID:  testutil.Video2.ID,
		LanguageCode: "es",
		Type:         entity.TaskTranslate,
	}
	require.NoError(t, taskRepo.Create(ctx, third))

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: first.ID})
	require.NoError(t, err)

	// A task cannot be taken from its assignee.
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: first.ID})
	require.Equal(t, "Task is already assigned", err.Error())

	// Only managing roles assign someone else.
	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{
		TaskID: second.ID,
		UserID: testutil.User3.ID,
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{
		TaskID: second.ID,
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	// Team2 caps open tasks per member at two.
	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: third.ID})
	require.Equal(t, "Assignee has too many open tasks", err.Error())

	// Unassigning frees a slot.
	_, err = taskDomain.Unassign(ctxUser2, &model.UnassignTaskRequest{TaskID: first.ID})
	require.NoError(t, err)

	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: third.ID})
	require.NoError(t, err)
}

func Test_taskDomain_NarrowedMembership(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()

	// User2 is narrowed to French work only.
	narrowingRepo := repository.NewMembershipNarrowingRepository()
	require.NoError(t, narrowingRepo.Create(ctx, &entity.MembershipNarrowing{
		Base:         entity.Base{ID: "narrowing1"},
		TeamID:       testutil.Team2.ID,
		UserID:       testutil.User2.ID,
		LanguageCode: sql.NullString{String: "fr", Valid: true},
		CreatedBy:    testutil.User1.ID,
	}))

	task := createSubtitleTask(t, ctx, "task_narrowed")

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: task.ID})
	require.Equal(t, "Assignee does not work in this language", err.Error())

	translate := &entity.Task{
		Base:         entity.Base{ID: "task_narrowed_fr"},
		TeamID:       testutil.Team2.ID,
		TeamVideoID:  testutil.Video2.ID,
		LanguageCode: "fr",
		Type:         entity.TaskTranslate,
	}
	require.NoError(t, repository.NewTaskRepository().Create(ctx, translate))

	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: translate.ID})
	require.NoError(t, err)

	// Members without narrowings are unaffected.
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: task.ID})
	require.NoError(t, err)
}

func Test_taskDomain_Expiration(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()

	task := createSubtitleTask(t, ctx, "task_expire")

	now := time.Now()
	ctxUser2 := xcontext.WithNow(
		testutil.NewMockContextWithUserID(ctx, testutil.User2.ID),
		func() time.Time { return now })

	assigned, err := taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: task.ID})
	require.NoError(t, err)

	expiration, err := time.Parse(time.RFC3339, assigned.ExpirationDate)
	require.NoError(t, err)
	require.Equal(t, now.Add(3*24*time.Hour).Unix(), expiration.Unix())

	// Four days later the assignment lapsed and the task reads as free.
	ctxLater := xcontext.WithNow(ctxUser2, func() time.Time { return now.Add(4 * 24 * time.Hour) })
	resp, err := taskDomain.GetList(ctxLater, &model.GetTasksRequest{TeamSlug: testutil.Team2.Slug})
	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	require.Empty(t, resp.Tasks[0].AssigneeUserID)
	require.Empty(t, resp.Tasks[0].ExpirationDate)
}

func Test_taskDomain_TranslationAutocreateSkips(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()
	taskRepo := repository.NewTaskRepository()

	setTaskWorkflow(t, ctx, testutil.Team2.ID, func(workflow *entity.TaskWorkflow) {
		workflow.AutocreateTranslate = true
	})

	langPrefRepo := repository.NewTeamLanguagePreferenceRepository()
	require.NoError(t, langPrefRepo.Create(ctx, &entity.TeamLanguagePreference{
		Base:         entity.Base{ID: "team2_pref_es"},
		TeamID:       testutil.Team2.ID,
		LanguageCode: "es",
	}))
	require.NoError(t, langPrefRepo.Create(ctx, &entity.TeamLanguagePreference{
		Base:         entity.Base{ID: "team2_pref_de"},
		TeamID:       testutil.Team2.ID,
		LanguageCode: "de",
	}))

	// French was translated in an earlier round, the task is long done.
	require.NoError(t, taskRepo.Create(ctx, &entity.Task{
		Base:          entity.Base{ID: "translate_done"},
		TeamID:        testutil.Team2.ID,
		TeamVideoID:   testutil.Video2.ID,
		LanguageCode:  "fr",
		Type:          entity.TaskTranslate,
		CompletedDate: sql.NullTime{Time: time.Now(), Valid: true},
	}))

	// Spanish subtitles are complete without any task ever existing.
	_, err := repository.NewSubtitleRepository().
		UpsertLanguage(ctx, testutil.Video2.VideoID, "es", true)
	require.NoError(t, err)

	task := createSubtitleTask(t, ctx, "subtitle_skip")
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: task.ID})
	require.NoError(t, err)
	_, err = taskDomain.Complete(ctxUser2, &model.CompleteTaskRequest{TaskID: task.ID})
	require.NoError(t, err)

	// Only the untouched language gets a fresh translate task.
	open, err := taskRepo.GetOpenByTeamVideoLanguage(ctx, testutil.Video2.ID, "fr")
	require.NoError(t, err)
	require.Empty(t, open)

	open, err = taskRepo.GetOpenByTeamVideoLanguage(ctx, testutil.Video2.ID, "es")
	require.NoError(t, err)
	require.Empty(t, open)

	open, err = taskRepo.GetOpenByTeamVideoLanguage(ctx, testutil.Video2.ID, "de")
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, entity.TaskTranslate, open[0].Type)
}

func Test_taskDomain_ManagerEditSkipsReview(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()
	subtitleRepo := repository.NewSubtitleRepository()

	setTaskWorkflow(t, ctx, testutil.Team2.ID, func(workflow *entity.TaskWorkflow) {
		workflow.ReviewAllowed = entity.ReviewPeer
	})

	// The subtitles were already published in an earlier round.
	language, err := subtitleRepo.UpsertLanguage(ctx, testutil.Video2.VideoID, "en", true)
	require.NoError(t, err)
	require.NoError(t, subtitleRepo.CreateVersion(ctx, &entity.SubtitleVersion{
		Base:               entity.Base{ID: "version1"},
		SubtitleLanguageID: language.ID,
		Number:             1,
		Visibility:         "public",
	}))

	// A manager's edit goes out directly, without a review round.
	task := createSubtitleTask(t, ctx, "manager_edit")
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err = taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: task.ID})
	require.NoError(t, err)

	completed, err := taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{TaskID: task.ID})
	require.NoError(t, err)
	require.Empty(t, completed.FollowupTaskID)

	latest, err := subtitleRepo.GetLatestVersion(ctx, language.ID)
	require.NoError(t, err)
	require.Equal(t, 2, latest.Number)
	require.Equal(t, "public", latest.Visibility)

	// A contributor editing the same subtitles still goes through review.
	task = createSubtitleTask(t, ctx, "contributor_edit")
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: task.ID})
	require.NoError(t, err)

	completed, err = taskDomain.Complete(ctxUser2, &model.CompleteTaskRequest{TaskID: task.ID})
	require.NoError(t, err)
	require.NotEmpty(t, completed.FollowupTaskID)

	latest, err = subtitleRepo.GetLatestVersion(ctx, language.ID)
	require.NoError(t, err)
	require.Equal(t, 3, latest.Number)
	require.Equal(t, "private", latest.Visibility)
}

func Test_taskDomain_VerdictsAndDelete(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	taskDomain := newTestTaskDomain()
	taskRepo := repository.NewTaskRepository()

	setTaskWorkflow(t, ctx, testutil.Team2.ID, func(workflow *entity.TaskWorkflow) {
		workflow.ReviewAllowed = entity.ReviewPeer
	})

	review := &entity.Task{
		Base:         entity.Base{ID: "task_review"},
		TeamID:       testutil.Team2.ID,
		TeamVideoID:  testutil.Video2.ID,
		LanguageCode: "en",
		Type:         entity.TaskReview,
	}
	require.NoError(t, taskRepo.Create(ctx, review))

	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err := taskDomain.Assign(ctxUser3, &model.AssignTaskRequest{TaskID: review.ID})
	require.NoError(t, err)

	// Only the assignee completes.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err = taskDomain.Complete(ctxUser2, &model.CompleteTaskRequest{
		TaskID:   review.ID,
		Approved: string(entity.TaskApprovedApproved),
	})
	require.Equal(t, "Only the assignee can complete a task", err.Error())

	// Review verdicts must be explicit.
	_, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   review.ID,
		Approved: "maybe",
	})
	require.Equal(t, "Invalid verdict maybe", err.Error())

	// in_progress is a known value but not an accepted verdict.
	_, err = taskDomain.Complete(ctxUser3, &model.CompleteTaskRequest{
		TaskID:   review.ID,
		Approved: string(entity.TaskInProgress),
	})
	require.Equal(t, "Invalid verdict in_progress", err.Error())

	// Deleting is reserved to managing roles.
	other := createSubtitleTask(t, ctx, "task_delete")
	_, err = taskDomain.Delete(ctxUser2, &model.DeleteTaskRequest{TaskID: other.ID})
	require.Equal(t, "Permission denied", err.Error())

	_, err = taskDomain.Delete(ctxUser3, &model.DeleteTaskRequest{TaskID: other.ID})
	require.NoError(t, err)

	_, err = taskDomain.Assign(ctxUser2, &model.AssignTaskRequest{TaskID: other.ID})
	require.Equal(t, "Task is no longer open", err.Error())
}
