package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/domain/search"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/testutil"
)

func newTestTeamVideoDomain(searchCaller *testutil.MockSearchCaller) TeamVideoDomain {
	return NewTeamVideoDomain(
		repository.NewTeamRepository(&testutil.MockRedisClient{}),
		repository.NewTeamVideoRepository(),
		repository.NewProjectRepository(),
		repository.NewWorkflowRepository(),
		repository.NewCollaborationRepository(),
		repository.NewCollaboratorRepository(),
		repository.NewCollaborationLanguageRepository(),
		repository.NewTaskRepository(),
		repository.NewTeamMemberRepository(),
		searchCaller,
	)
}

func Test_teamVideoDomain_AddToCollaborationTeam(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	var indexedIDs []string
	videoDomain := newTestTeamVideoDomain(&testutil.MockSearchCaller{
		IndexVideoFunc: func(ctx context.Context, id string, data search.VideoData) error {
			indexedIDs = append(indexedIDs, id)
			return nil
		},
	})

	// Adding videos is for managing roles.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := videoDomain.Add(ctxUser2, &model.AddTeamVideoRequest{
		TeamSlug: testutil.Team1.Slug,
		VideoID:  "video3",
	})
	require.Equal(t, "Permission denied", err.Error())

	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	added, err := videoDomain.Add(ctxUser3, &model.AddTeamVideoRequest{
		TeamSlug:                 testutil.Team1.Slug,
		VideoID:                  "video3",
		Title:                    "A third video",
		PrimaryAudioLanguageCode: "en",
		DurationSeconds:          120,
	})
	require.NoError(t, err)
	require.Equal(t, []string{added.ID}, indexedIDs)

	// One collaboration per working language, all waiting for a subtitler.
	collabRepo := repository.NewCollaborationRepository()
	collaborations, err := collabRepo.GetListByTeamVideoID(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, collaborations, len(testutil.Team1Languages))
	for _, collaboration := range collaborations {
		require.Equal(t, entity.CollabNeedsSubtitler, collaboration.State)
	}
}

func Test_teamVideoDomain_AddToTaskTeam(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	videoDomain := newTestTeamVideoDomain(&testutil.MockSearchCaller{})

	setTaskWorkflow(t, ctx, testutil.Team2.ID, func(workflow *entity.TaskWorkflow) {
		workflow.AutocreateSubtitle = true
	})

	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	added, err := videoDomain.Add(ctxUser3, &model.AddTeamVideoRequest{
		TeamSlug:                 testutil.Team2.Slug,
		VideoID:                  "video3",
		PrimaryAudioLanguageCode: "en",
		DurationSeconds:          60,
	})
	require.NoError(t, err)

	tasks, err := repository.NewTaskRepository().GetOpenByTeamVideo(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, entity.TaskSubtitle, tasks[0].Type)
	require.Equal(t, "en", tasks[0].LanguageCode)
}

func Test_teamVideoDomain_MoveResyncsCollaborations(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	videoDomain := newTestTeamVideoDomain(&testutil.MockSearchCaller{})
	collaborationDomain := newTestCollaborationDomain(&testutil.MockPublisher{})

	// Someone starts working on the French unit before the move.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	started, err := collaborationDomain.Start(ctxUser2, &model.StartCollaborationRequest{
		TeamVideoID:  testutil.Video1.ID,
		LanguageCode: "fr",
	})
	require.NoError(t, err)

	// A collaboration-languages change plus a move: the target team declares
	// no languages, so only the unit with a collaborator survives.
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = videoDomain.Move(ctxUser1, &model.MoveTeamVideoRequest{
		TeamVideoID: testutil.Video1.ID,
		TeamSlug:    testutil.Team2.Slug,
	})
	require.NoError(t, err)

	collabRepo := repository.NewCollaborationRepository()
	collaborations, err := collabRepo.GetListByTeamVideoID(ctx, testutil.Video1.ID)
	require.NoError(t, err)
	require.Len(t, collaborations, 1)
	require.Equal(t, started.CollaborationID, collaborations[0].ID)

	// The surviving unit follows the new team.
	require.True(t, collaborations[0].TeamID.Valid)
	require.Equal(t, testutil.Team2.ID, collaborations[0].TeamID.String)
}

func Test_teamVideoDomain_Remove(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	var deletedIDs []string
	videoDomain := newTestTeamVideoDomain(&testutil.MockSearchCaller{
		DeleteVideoFunc: func(ctx context.Context, id string) error {
			deletedIDs = append(deletedIDs, id)
			return nil
		},
	})

	task := &entity.Task{
		Base:         entity.Base{ID: "task_on_video2"},
		TeamID:       testutil.Team2.ID,
		TeamVideoID:  testutil.Video2.ID,
		LanguageCode: "en",
		Type:         entity.TaskSubtitle,
	}
	taskRepo := repository.NewTaskRepository()
	require.NoError(t, taskRepo.Create(ctx, task))

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := videoDomain.Remove(ctxUser2, &model.RemoveTeamVideoRequest{
		TeamVideoID: testutil.Video2.ID,
	})
	require.Equal(t, "Permission denied", err.Error())

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = videoDomain.Remove(ctxUser1, &model.RemoveTeamVideoRequest{
		TeamVideoID: testutil.Video2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Video2.ID}, deletedIDs)

	_, err = videoDomain.Remove(ctxUser1, &model.RemoveTeamVideoRequest{
		TeamVideoID: testutil.Video2.ID,
	})
	require.Equal(t, "Not found team video", err.Error())

	// Open tasks of the removed video are gone with it.
	open, err := taskRepo.GetOpenByTeamVideo(ctx, testutil.Video2.ID)
	require.NoError(t, err)
	require.Empty(t, open)
}

func Test_teamVideoDomain_GetListAndSearch(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	videoDomain := newTestTeamVideoDomain(&testutil.MockSearchCaller{
		SearchVideoFunc: func(ctx context.Context, query string, offset, limit int) ([]string, error) {
			// The index also returns a hit from another team.
			return []string{testutil.Video1.ID, testutil.Video2.ID}, nil
		},
	})

	list, err := videoDomain.GetList(ctx, &model.GetTeamVideosRequest{TeamSlug: testutil.Team1.Slug})
	require.NoError(t, err)
	require.Len(t, list.Videos, 1)
	require.Equal(t, testutil.Video1.VideoID, list.Videos[0].VideoID)

	found, err := videoDomain.Search(ctx, &model.SearchVideosRequest{
		TeamSlug: testutil.Team1.Slug,
		Query:    "video",
	})
	require.NoError(t, err)
	require.Len(t, found.Videos, 1)
	require.Equal(t, testutil.Video1.ID, found.Videos[0].ID)
}

func Test_teamVideoDomain_AddWithCorruptedWorkflowStyle(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	videoDomain := newTestTeamVideoDomain(&testutil.MockSearchCaller{})

	teamRepo := repository.NewTeamRepository(&testutil.MockRedisClient{})
	err := teamRepo.UpdateByID(ctx, testutil.Team1.ID, &entity.Team{
		WorkflowStyle: entity.WorkflowStyle("committee"),
	})
	require.NoError(t, err)

	// A style nobody registered fails the request instead of silently
	// running the video without a workflow.
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err = videoDomain.Add(ctxUser3, &model.AddTeamVideoRequest{
		TeamSlug:                 testutil.Team1.Slug,
		VideoID:                  "video3",
		PrimaryAudioLanguageCode: "en",
	})
	require.Equal(t, "Request failed", err.Error())
}
