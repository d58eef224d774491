package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/testutil"
)

func newTestTeamDomain() TeamDomain {
	return NewTeamDomain(
		repository.NewTeamRepository(&testutil.MockRedisClient{}),
		repository.NewTeamMemberRepository(),
		repository.NewWorkflowRepository(),
		repository.NewCollaborationLanguageRepository(),
		repository.NewCollaborationRepository(),
		repository.NewCollaboratorRepository(),
		repository.NewTeamVideoRepository(),
		repository.NewProjectRepository(),
		repository.NewUserRepository(),
		repository.NewMembershipNarrowingRepository(),
		repository.NewTeamLanguagePreferenceRepository(),
	)
}

func Test_teamDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := teamDomain.Create(ctxUser1, &model.CreateTeamRequest{Slug: "noname"})
	require.Equal(t, "Not allow an empty name or slug", err.Error())

	_, err = teamDomain.Create(ctxUser1, &model.CreateTeamRequest{
		Name:          "Third Team",
		Slug:          "team3",
		WorkflowStyle: "assembly line",
	})
	require.Equal(t, "Invalid workflow style assembly line", err.Error())

	created, err := teamDomain.Create(ctxUser1, &model.CreateTeamRequest{
		Name:          "Third Team",
		Slug:          "team3",
		WorkflowStyle: string(entity.WorkflowStyleCollaboration),
	})
	require.NoError(t, err)

	got, err := teamDomain.Get(ctx, &model.GetTeamRequest{Slug: "team3"})
	require.NoError(t, err)
	require.Equal(t, created.ID, got.Team.ID)
	require.Equal(t, "Third Team", got.Team.Name)
	require.Equal(t, string(entity.WorkflowStyleCollaboration), got.Team.WorkflowStyle)

	// The creator becomes the owner.
	member, err := repository.NewTeamMemberRepository().Get(ctx, created.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleOwner, member.Role)

	_, err = teamDomain.Get(ctx, &model.GetTeamRequest{Slug: "nothing"})
	require.Equal(t, "Not found team", err.Error())
}

func Test_teamDomain_Update(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err := teamDomain.Update(ctxUser2, &model.UpdateTeamRequest{
		Slug:        testutil.Team1.Slug,
		Description: "nope",
	})
	require.Equal(t, "Permission denied", err.Error())

	enabled := true
	expiration := int64(7)
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = teamDomain.Update(ctxUser1, &model.UpdateTeamRequest{
		Slug:            testutil.Team1.Slug,
		Description:     "all about subtitles",
		ProjectsEnabled: &enabled,
		TaskExpiration:  &expiration,
	})
	require.NoError(t, err)

	got, err := teamDomain.Get(ctx, &model.GetTeamRequest{Slug: testutil.Team1.Slug})
	require.NoError(t, err)
	require.Equal(t, "all about subtitles", got.Team.Description)
	require.True(t, got.Team.ProjectsEnabled)
	require.Equal(t, int64(7), got.Team.TaskExpiration)
}

func Test_teamDomain_Members(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)

	// A contributor cannot manage membership.
	_, err := teamDomain.AddMember(ctxUser2, &model.AddTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
		Role:     string(entity.RoleContributor),
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = teamDomain.AddMember(ctxUser1, &model.AddTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
		Role:     "boss",
	})
	require.Equal(t, "Invalid role boss", err.Error())

	_, err = teamDomain.AddMember(ctxUser1, &model.AddTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
		Role:     string(entity.RoleOwner),
	})
	require.Equal(t, "Cannot grant the owner role", err.Error())

	_, err = teamDomain.AddMember(ctxUser1, &model.AddTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   "ghost",
		Role:     string(entity.RoleContributor),
	})
	require.Equal(t, "Not found user", err.Error())

	_, err = teamDomain.AddMember(ctxUser1, &model.AddTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
		Role:     string(entity.RoleContributor),
	})
	require.NoError(t, err)

	members, err := teamDomain.GetMembers(ctx, &model.GetTeamMembersRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.NoError(t, err)
	require.Len(t, members.Members, 4)

	// The owner role cannot change hands through a role update.
	_, err = teamDomain.ChangeMemberRole(ctxUser1, &model.ChangeTeamMemberRoleRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
		Role:     string(entity.RoleOwner),
	})
	require.Equal(t, "Cannot change the owner role", err.Error())

	_, err = teamDomain.ChangeMemberRole(ctxUser1, &model.ChangeTeamMemberRoleRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
		Role:     string(entity.RoleManager),
	})
	require.NoError(t, err)

	member, err := repository.NewTeamMemberRepository().Get(ctx, testutil.Team1.ID, testutil.User4.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleManager, member.Role)

	// The owner is protected from removal, a member may leave on their own.
	_, err = teamDomain.RemoveMember(ctxUser1, &model.RemoveTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User1.ID,
	})
	require.Equal(t, "Cannot remove the owner", err.Error())

	_, err = teamDomain.RemoveMember(ctxUser2, &model.RemoveTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User4.ID,
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = teamDomain.RemoveMember(ctxUser2, &model.RemoveTeamMemberRequest{
		TeamSlug: testutil.Team1.Slug,
		UserID:   testutil.User2.ID,
	})
	require.NoError(t, err)

	members, err = teamDomain.GetMembers(ctx, &model.GetTeamMembersRequest{
		TeamSlug: testutil.Team1.Slug,
	})
	require.NoError(t, err)
	require.Len(t, members.Members, 3)
}

func Test_teamDomain_UpdateWorkflows(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()
	workflowRepo := repository.NewWorkflowRepository()

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := teamDomain.UpdateCollaborationWorkflow(ctxUser1, &model.UpdateCollaborationWorkflowRequest{
		TeamSlug:         testutil.Team1.Slug,
		CompletionPolicy: "unanimous",
	})
	require.Equal(t, "Invalid completion policy unanimous", err.Error())

	only1 := false
	limit := 3
	_, err = teamDomain.UpdateCollaborationWorkflow(ctxUser1, &model.UpdateCollaborationWorkflowRequest{
		TeamSlug:         testutil.Team1.Slug,
		CompletionPolicy: string(entity.CompletionReviewer),
		Only1Reviewer:    &only1,
		LimitOpenTasks:   &limit,
	})
	require.NoError(t, err)

	collabWorkflow, err := workflowRepo.GetCollaborationWorkflow(ctx, testutil.Team1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CompletionReviewer, collabWorkflow.CompletionPolicy)
	require.False(t, collabWorkflow.Only1Reviewer)
	require.Equal(t, 3, collabWorkflow.LimitOpenTasks)

	autocreate := true
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err = teamDomain.UpdateTaskWorkflow(ctxUser2, &model.UpdateTaskWorkflowRequest{
		TeamSlug:           testutil.Team2.Slug,
		AutocreateSubtitle: &autocreate,
		ReviewAllowed:      string(entity.ReviewPeer),
		ApproveAllowed:     string(entity.ApproveManager),
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = teamDomain.UpdateTaskWorkflow(ctxUser1, &model.UpdateTaskWorkflowRequest{
		TeamSlug:           testutil.Team2.Slug,
		AutocreateSubtitle: &autocreate,
		ReviewAllowed:      string(entity.ReviewPeer),
		ApproveAllowed:     string(entity.ApproveManager),
	})
	require.NoError(t, err)

	taskWorkflow, err := workflowRepo.GetTaskWorkflow(ctx, testutil.Team2.ID)
	require.NoError(t, err)
	require.True(t, taskWorkflow.AutocreateSubtitle)
	require.Equal(t, entity.ReviewPeer, taskWorkflow.ReviewAllowed)
	require.Equal(t, entity.ApproveManager, taskWorkflow.ApproveAllowed)
}

func Test_teamDomain_SetCollaborationLanguages(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()
	collabLangRepo := repository.NewCollaborationLanguageRepository()
	collabRepo := repository.NewCollaborationRepository()
	collaboratorRepo := repository.NewCollaboratorRepository()

	// Someone already subtitles fr on video1.
	err := collabRepo.Create(ctx, &entity.Collaboration{
		Base:         entity.Base{ID: "collab_fr"},
		TeamVideoID:  testutil.Video1.ID,
		LanguageCode: "fr",
		State:        entity.CollabBeingSubtitled,
	})
	require.NoError(t, err)
	err = collaboratorRepo.Create(ctx, &entity.Collaborator{
		Base:            entity.Base{ID: "collaborator_fr"},
		CollaborationID: "collab_fr",
		UserID:          testutil.User2.ID,
		Role:            entity.RoleSubtitler,
	})
	require.NoError(t, err)

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = teamDomain.SetCollaborationLanguages(ctxUser1, &model.SetCollaborationLanguagesRequest{
		TeamSlug:  testutil.Team1.Slug,
		Languages: []string{"en", "es"},
	})
	require.NoError(t, err)

	codes, err := collabLangRepo.GetCodesByTeamID(ctx, testutil.Team1.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"en", "es"}, codes)

	// Existing videos pick up collaborations for the new language set, but
	// the started fr collaboration survives the change.
	collaborations, err := collabRepo.GetListByTeamVideoID(ctx, testutil.Video1.ID)
	require.NoError(t, err)

	unitCodes := []string{}
	for _, collaboration := range collaborations {
		unitCodes = append(unitCodes, collaboration.LanguageCode)
	}
	require.ElementsMatch(t, []string{"en", "es", "fr"}, unitCodes)
}

func Test_teamDomain_SetLanguagePreferences(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := teamDomain.SetLanguagePreferences(ctxUser1, &model.SetLanguagePreferencesRequest{
		TeamSlug:  testutil.Team2.Slug,
		Languages: []string{"es", "de"},
	})
	require.NoError(t, err)

	codes, err := repository.NewTeamLanguagePreferenceRepository().
		GetCodesByTeamID(ctx, testutil.Team2.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"es", "de"}, codes)
}

func Test_teamDomain_MemberNarrowings(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := teamDomain.AddMemberNarrowing(ctxUser1, &model.AddMemberNarrowingRequest{
		TeamSlug: testutil.Team2.Slug,
		UserID:   testutil.User2.ID,
	})
	require.Equal(t, "Narrowing needs a language or a project", err.Error())

	_, err = teamDomain.AddMemberNarrowing(ctxUser1, &model.AddMemberNarrowingRequest{
		TeamSlug:     testutil.Team2.Slug,
		UserID:       "ghost",
		LanguageCode: "fr",
	})
	require.Equal(t, "Not found member", err.Error())

	added, err := teamDomain.AddMemberNarrowing(ctxUser1, &model.AddMemberNarrowingRequest{
		TeamSlug:     testutil.Team2.Slug,
		UserID:       testutil.User2.ID,
		LanguageCode: "fr",
	})
	require.NoError(t, err)

	narrowings, err := repository.NewMembershipNarrowingRepository().
		GetList(ctx, testutil.Team2.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Len(t, narrowings, 1)
	require.Equal(t, testutil.User1.ID, narrowings[0].CreatedBy)

	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	_, err = teamDomain.RemoveMemberNarrowing(ctxUser2, &model.RemoveMemberNarrowingRequest{
		NarrowingID: added.ID,
	})
	require.Equal(t, "Permission denied", err.Error())

	_, err = teamDomain.RemoveMemberNarrowing(ctxUser1, &model.RemoveMemberNarrowingRequest{
		NarrowingID: added.ID,
	})
	require.NoError(t, err)

	_, err = teamDomain.RemoveMemberNarrowing(ctxUser1, &model.RemoveMemberNarrowingRequest{
		NarrowingID: added.ID,
	})
	require.Equal(t, "Not found narrowing", err.Error())
}

func Test_teamDomain_Projects(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	teamDomain := newTestTeamDomain()

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := teamDomain.CreateProject(ctxUser1, &model.CreateProjectRequest{
		TeamSlug: testutil.Team1.Slug,
		Name:     "Documentaries",
		Slug:     "documentaries",
	})
	require.Equal(t, "Projects are not enabled for this team", err.Error())

	enabled := true
	_, err = teamDomain.Update(ctxUser1, &model.UpdateTeamRequest{
		Slug:            testutil.Team1.Slug,
		ProjectsEnabled: &enabled,
	})
	require.NoError(t, err)

	created, err := teamDomain.CreateProject(ctxUser1, &model.CreateProjectRequest{
		TeamSlug: testutil.Team1.Slug,
		Name:     "Documentaries",
		Slug:     "documentaries",
	})
	require.NoError(t, err)

	_, err = teamDomain.ShareProject(ctxUser1, &model.ShareProjectRequest{
		ProjectID: created.ID,
		TeamSlug:  testutil.Team1.Slug,
	})
	require.Equal(t, "Cannot share a project with its own team", err.Error())

	_, err = teamDomain.ShareProject(ctxUser1, &model.ShareProjectRequest{
		ProjectID: created.ID,
		TeamSlug:  testutil.Team2.Slug,
	})
	require.NoError(t, err)

	shared, err := repository.NewProjectRepository().GetSharedProjectIDs(ctx, testutil.Team2.ID)
	require.NoError(t, err)
	require.Equal(t, []string{created.ID}, shared)
}
