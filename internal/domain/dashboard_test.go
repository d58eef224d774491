package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/testutil"
)

func newTestDashboardDomain() DashboardDomain {
	return NewDashboardDomain(
		repository.NewTeamRepository(&testutil.MockRedisClient{}),
		repository.NewTeamVideoRepository(),
		repository.NewProjectRepository(),
		repository.NewWorkflowRepository(),
		repository.NewCollaborationRepository(),
		repository.NewCollaboratorRepository(),
		repository.NewCollaborationLanguageRepository(),
		repository.NewUserRepository(),
		repository.NewTeamMemberRepository(),
	)
}

func Test_dashboardDomain_Get(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	dashboardDomain := newTestDashboardDomain()
	collaborationDomain := newTestCollaborationDomain(&testutil.MockPublisher{})

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	started, err := collaborationDomain.Start(ctxUser2, &model.StartCollaborationRequest{
		TeamVideoID:  testutil.Video1.ID,
		LanguageCode: "fr",
	})
	require.NoError(t, err)

	resp, err := dashboardDomain.Get(ctxUser2, &model.DashboardRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.NoError(t, err)

	require.Len(t, resp.Joined, 1)
	require.Equal(t, started.CollaborationID, resp.Joined[0].ID)

	// Nothing joinable: the only open collaboration is the user's own.
	require.Empty(t, resp.CanJoin)

	// The remaining team language of the video can still be started.
	require.Len(t, resp.CanStart, 1)
	require.Equal(t, testutil.Video1.ID, resp.CanStart[0].TeamVideoID)
	require.Equal(t, "en", resp.CanStart[0].LanguageCode)
	require.Equal(t, string(entity.CollabNeedsSubtitler), resp.CanStart[0].State)
	require.Empty(t, resp.CanStart[0].ID)
}

func Test_dashboardDomain_CanJoinOrdering(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	dashboardDomain := newTestDashboardDomain()

	collabRepo := repository.NewCollaborationRepository()
	team := sql.NullString{String: testutil.Team1.ID, Valid: true}

	nearComplete := entity.Collaboration{
		Base:             entity.Base{ID: "collab_near_complete"},
		TeamVideoID:      testutil.Video1.ID,
		LanguageCode:     "fr",
		TeamID:           team,
		State:            entity.CollabNeedsApprover,
		LastActivityDate: time.Now(),
	}
	fresh := entity.Collaboration{
		Base:             entity.Base{ID: "collab_fresh"},
		TeamVideoID:      testutil.Video1.ID,
		LanguageCode:     "en",
		TeamID:           team,
		State:            entity.CollabNeedsSubtitler,
		LastActivityDate: time.Now(),
	}
	require.NoError(t, collabRepo.Create(ctx, &nearComplete))
	require.NoError(t, collabRepo.Create(ctx, &fresh))

	// A manager sees the unit closest to completion first.
	ctxUser3 := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	resp, err := dashboardDomain.Get(ctxUser3, &model.DashboardRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.NoError(t, err)
	require.Len(t, resp.CanJoin, 2)
	require.Equal(t, nearComplete.ID, resp.CanJoin[0].ID)
	require.Equal(t, fresh.ID, resp.CanJoin[1].ID)

	// A contributor is never offered the approval seat.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	resp, err = dashboardDomain.Get(ctxUser2, &model.DashboardRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.NoError(t, err)
	require.Len(t, resp.CanJoin, 1)
	require.Equal(t, fresh.ID, resp.CanJoin[0].ID)

	// Every pair of the video is taken, nothing is left to start.
	require.Empty(t, resp.CanStart)
}

func Test_dashboardDomain_UnclaimedUnits(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	dashboardDomain := newTestDashboardDomain()
	teamDomain := newTestTeamDomain()

	// Reconciling the languages seeds unclaimed units for video1.
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := teamDomain.SetCollaborationLanguages(ctxUser1, &model.SetCollaborationLanguagesRequest{
		TeamSlug:  testutil.Team1.Slug,
		Languages: []string{"en", "fr"},
	})
	require.NoError(t, err)

	// A contributor sees them both as joinable and as startable work.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := dashboardDomain.Get(ctxUser2, &model.DashboardRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.NoError(t, err)

	require.Len(t, resp.CanJoin, 2)
	require.Len(t, resp.CanStart, 2)
	for _, unit := range resp.CanStart {
		require.Equal(t, testutil.Video1.ID, unit.TeamVideoID)
		require.Equal(t, testutil.Video1.VideoID, unit.VideoID)
		require.Equal(t, string(entity.CollabNeedsSubtitler), unit.State)
		require.NotEmpty(t, unit.ID)
	}
}

func Test_dashboardDomain_Errors(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	dashboardDomain := newTestDashboardDomain()

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := dashboardDomain.Get(ctxUser2, &model.DashboardRequest{TeamSlug: "nope"})
	require.Equal(t, "Not found team", err.Error())

	// Team2 runs the task workflow, it has no collaboration dashboard.
	_, err = dashboardDomain.Get(ctxUser2, &model.DashboardRequest{
		TeamSlug: testutil.Team2.Slug,
	})
	require.Equal(t, "Team does not use the collaboration workflow", err.Error())

	ctxUser4 := testutil.NewMockContextWithUserID(ctx, testutil.User4.ID)
	_, err = dashboardDomain.Get(ctxUser4, &model.DashboardRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.Equal(t, "Permission denied", err.Error())
}
