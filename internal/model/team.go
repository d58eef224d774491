package model

type Team struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	WorkflowStyle   string `json:"workflow_style"`
	ProjectsEnabled bool   `json:"projects_enabled"`
	TaskExpiration  int64  `json:"task_expiration,omitempty"`
}

type TeamMember struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type Project struct {
	ID     string `json:"id"`
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}

type TeamVideo struct {
	ID                       string `json:"id"`
	TeamID                   string `json:"team_id"`
	ProjectID                string `json:"project_id,omitempty"`
	VideoID                  string `json:"video_id"`
	Title                    string `json:"title"`
	PrimaryAudioLanguageCode string `json:"primary_audio_language_code"`
}

type CreateTeamRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	WorkflowStyle string `json:"workflow_style"`
}

type CreateTeamResponse struct {
	ID string `json:"id"`
}

type GetTeamRequest struct {
	Slug string `json:"slug"`
}

type GetTeamResponse struct {
	Team Team `json:"team"`
}

type UpdateTeamRequest struct {
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	WorkflowStyle   string `json:"workflow_style"`
	ProjectsEnabled *bool  `json:"projects_enabled"`
	TaskExpiration  *int64 `json:"task_expiration"`
}

type UpdateTeamResponse struct{}

type AddTeamMemberRequest struct {
	TeamSlug string `json:"team_slug"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}

type AddTeamMemberResponse struct{}

type ChangeTeamMemberRoleRequest struct {
	TeamSlug string `json:"team_slug"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}

type ChangeTeamMemberRoleResponse struct{}

type RemoveTeamMemberRequest struct {
	TeamSlug string `json:"team_slug"`
	UserID   string `json:"user_id"`
}

type RemoveTeamMemberResponse struct{}

type GetTeamMembersRequest struct {
	TeamSlug string `json:"team_slug"`
}

type GetTeamMembersResponse struct {
	Members []TeamMember `json:"members"`
}

type UpdateCollaborationWorkflowRequest struct {
	TeamSlug                 string `json:"team_slug"`
	CompletionPolicy         string `json:"completion_policy"`
	Only1Subtitler           *bool  `json:"only1_subtitler"`
	Only1Reviewer            *bool  `json:"only1_reviewer"`
	Only1Approver            *bool  `json:"only1_approver"`
	OnCompletePublishLatest  *bool  `json:"on_complete_publish_latest"`
	OnCompleteNotifyManagers *bool  `json:"on_complete_notify_managers"`
	LimitOpenTasks           *int   `json:"limit_open_tasks"`
}

type UpdateCollaborationWorkflowResponse struct{}

type UpdateTaskWorkflowRequest struct {
	TeamSlug            string `json:"team_slug"`
	AutocreateSubtitle  *bool  `json:"autocreate_subtitle"`
	AutocreateTranslate *bool  `json:"autocreate_translate"`
	ReviewAllowed       string `json:"review_allowed"`
	ApproveAllowed      string `json:"approve_allowed"`
}

type UpdateTaskWorkflowResponse struct{}

type SetCollaborationLanguagesRequest struct {
	TeamSlug  string   `json:"team_slug"`
	Languages []string `json:"languages"`
}

type SetCollaborationLanguagesResponse struct{}

type SetLanguagePreferencesRequest struct {
	TeamSlug  string   `json:"team_slug"`
	Languages []string `json:"languages"`
}

type SetLanguagePreferencesResponse struct{}

type CreateProjectRequest struct {
	TeamSlug string `json:"team_slug"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

type CreateProjectResponse struct {
	ID string `json:"id"`
}

type ShareProjectRequest struct {
	ProjectID string `json:"project_id"`
	TeamSlug  string `json:"team_slug"`
}

type ShareProjectResponse struct{}

type AddMemberNarrowingRequest struct {
	TeamSlug     string `json:"team_slug"`
	UserID       string `json:"user_id"`
	LanguageCode string `json:"language_code"`
	ProjectID    string `json:"project_id"`
}

type AddMemberNarrowingResponse struct {
	ID string `json:"id"`
}

type RemoveMemberNarrowingRequest struct {
	NarrowingID string `json:"narrowing_id"`
}

type RemoveMemberNarrowingResponse struct{}
