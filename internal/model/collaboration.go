package model

type Collaboration struct {
	ID               string         `json:"id"`
	TeamVideoID      string         `json:"team_video_id"`
	VideoID          string         `json:"video_id,omitempty"`
	LanguageCode     string         `json:"language_code"`
	TeamID           string         `json:"team_id,omitempty"`
	ProjectID        string         `json:"project_id,omitempty"`
	State            string         `json:"state"`
	LastActivityDate string         `json:"last_activity_date"`
	Collaborators    []Collaborator `json:"collaborators,omitempty"`
}

type Collaborator struct {
	UserID          string `json:"user_id"`
	Role            string `json:"role"`
	StartDate       string `json:"start_date"`
	EndorsementDate string `json:"endorsement_date,omitempty"`
	Complete        bool   `json:"complete"`
}

type CollaborationNote struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type CollaborationHistory struct {
	UserID    string `json:"user_id,omitempty"`
	Action    string `json:"action"`
	FromState string `json:"from_state,omitempty"`
	ToState   string `json:"to_state,omitempty"`
	CreatedAt string `json:"created_at"`
}

type GetCollaborationRequest struct {
	CollaborationID string `json:"collaboration_id"`
}

type GetCollaborationResponse struct {
	Collaboration Collaboration          `json:"collaboration"`
	Notes         []CollaborationNote    `json:"notes"`
	History       []CollaborationHistory `json:"history"`
}

type JoinCollaborationRequest struct {
	CollaborationID string `json:"collaboration_id"`
}

type JoinCollaborationResponse struct {
	Role  string `json:"role"`
	State string `json:"state"`
}

type StartCollaborationRequest struct {
	TeamVideoID  string `json:"team_video_id"`
	LanguageCode string `json:"language_code"`
}

type StartCollaborationResponse struct {
	CollaborationID string `json:"collaboration_id"`
	State           string `json:"state"`
}

type EndorseCollaborationRequest struct {
	CollaborationID string `json:"collaboration_id"`
}

type EndorseCollaborationResponse struct {
	State string `json:"state"`
}

type UnendorseCollaborationRequest struct {
	CollaborationID string `json:"collaboration_id"`
}

type UnendorseCollaborationResponse struct {
	State string `json:"state"`
}

type LeaveCollaborationRequest struct {
	CollaborationID string `json:"collaboration_id"`
}

type LeaveCollaborationResponse struct {
	State string `json:"state"`
}

type AddCollaborationNoteRequest struct {
	CollaborationID string `json:"collaboration_id"`
	Body            string `json:"body"`
}

type AddCollaborationNoteResponse struct {
	ID string `json:"id"`
}

type DashboardRequest struct {
	TeamSlug string `json:"team_slug"`
}

type DashboardResponse struct {
	Joined   []Collaboration `json:"joined"`
	CanJoin  []Collaboration `json:"can_join"`
	CanStart []Collaboration `json:"can_start"`
}
