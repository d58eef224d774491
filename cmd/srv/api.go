package main

import (
	"net/http"

	"github.com/ujdhesa/unisubs/internal/middleware"
	"github.com/ujdhesa/unisubs/pkg/router"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadSearchCaller()
	s.loadAuth()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ApiServer.Port)

	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: middleware.AllowCors(s.router.Handler()),
	}

	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.WithAuthentication())

	// Public routes.
	{
		router.POST(s.router, "/login", s.authDomain.Login)
		router.POST(s.router, "/refresh", s.authDomain.Refresh)
		router.POST(s.router, "/createUser", s.userDomain.Create)
		router.GET(s.router, "/getTeam", s.teamDomain.Get)
		router.GET(s.router, "/getTeamVideos", s.teamVideoDomain.GetList)
		router.GET(s.router, "/searchVideos", s.teamVideoDomain.Search)
	}

	// Authenticated routes.
	{
		authRouter := s.router.Branch()
		authRouter.Before(middleware.Authenticate())

		router.GET(authRouter, "/getMe", s.userDomain.Get)
		router.POST(authRouter, "/updateUserLanguages", s.userDomain.UpdateLanguages)

		router.POST(authRouter, "/createTeam", s.teamDomain.Create)
		router.POST(authRouter, "/updateTeam", s.teamDomain.Update)
		router.POST(authRouter, "/addTeamMember", s.teamDomain.AddMember)
		router.POST(authRouter, "/changeTeamMemberRole", s.teamDomain.ChangeMemberRole)
		router.POST(authRouter, "/removeTeamMember", s.teamDomain.RemoveMember)
		router.GET(authRouter, "/getTeamMembers", s.teamDomain.GetMembers)
		router.POST(authRouter, "/addMemberNarrowing", s.teamDomain.AddMemberNarrowing)
		router.POST(authRouter, "/removeMemberNarrowing", s.teamDomain.RemoveMemberNarrowing)
		router.POST(authRouter, "/updateCollaborationWorkflow", s.teamDomain.UpdateCollaborationWorkflow)
		router.POST(authRouter, "/updateTaskWorkflow", s.teamDomain.UpdateTaskWorkflow)
		router.POST(authRouter, "/setCollaborationLanguages", s.teamDomain.SetCollaborationLanguages)
		router.POST(authRouter, "/setLanguagePreferences", s.teamDomain.SetLanguagePreferences)
		router.POST(authRouter, "/createProject", s.teamDomain.CreateProject)
		router.POST(authRouter, "/shareProject", s.teamDomain.ShareProject)

		router.POST(authRouter, "/addTeamVideo", s.teamVideoDomain.Add)
		router.POST(authRouter, "/moveTeamVideo", s.teamVideoDomain.Move)
		router.POST(authRouter, "/removeTeamVideo", s.teamVideoDomain.Remove)

		router.GET(authRouter, "/getCollaboration", s.collaborationDomain.Get)
		router.POST(authRouter, "/startCollaboration", s.collaborationDomain.Start)
		router.POST(authRouter, "/joinCollaboration", s.collaborationDomain.Join)
		router.POST(authRouter, "/endorseCollaboration", s.collaborationDomain.Endorse)
		router.POST(authRouter, "/unendorseCollaboration", s.collaborationDomain.Unendorse)
		router.POST(authRouter, "/leaveCollaboration", s.collaborationDomain.Leave)
		router.POST(authRouter, "/addCollaborationNote", s.collaborationDomain.AddNote)

		router.GET(authRouter, "/getDashboard", s.dashboardDomain.Get)

		router.GET(authRouter, "/getTasks", s.taskDomain.GetList)
		router.POST(authRouter, "/assignTask", s.taskDomain.Assign)
		router.POST(authRouter, "/unassignTask", s.taskDomain.Unassign)
		router.POST(authRouter, "/completeTask", s.taskDomain.Complete)
		router.POST(authRouter, "/deleteTask", s.taskDomain.Delete)

		router.GET(authRouter, "/getBillingRecords", s.billingDomain.GetRecords)
	}

	// Session login lives outside the json router because it must write a
	// cookie through the ResponseWriter.
	s.router.Mount("/sessionLogin", http.HandlerFunc(s.handleSessionLogin))
}

// handleSessionLogin authenticates a user by name and records the user id in
// a server-side session cookie, as an alternative to bearer tokens for
// browser clients.
func (s *srv) handleSessionLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "not supported method", http.StatusMethodNotAllowed)
		return
	}

	name := req.PostFormValue("name")
	if name == "" {
		http.Error(w, "not allow an empty name", http.StatusBadRequest)
		return
	}

	ctx := xcontext.WithHTTPRequest(s.ctx, req)
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		http.Error(w, "user not found", http.StatusUnauthorized)
		return
	}

	session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		http.Error(w, "cannot open session", http.StatusInternalServerError)
		return
	}

	session.Values["user_id"] = user.ID
	if err := session.Save(req, w); err != nil {
		http.Error(w, "cannot save session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
