package entity

import (
	"database/sql"
	"time"

	"github.com/ujdhesa/unisubs/pkg/enum"
)

type CollaborationState string

var (
	CollabNeedsSubtitler = enum.New(CollaborationState("needs_subtitler"))
	CollabBeingSubtitled = enum.New(CollaborationState("being_subtitled"))
	CollabNeedsReviewer  = enum.New(CollaborationState("needs_reviewer"))
	CollabBeingReviewed  = enum.New(CollaborationState("being_reviewed"))
	CollabNeedsApprover  = enum.New(CollaborationState("needs_approver"))
	CollabBeingApproved  = enum.New(CollaborationState("being_approved"))
	CollabComplete       = enum.New(CollaborationState("complete"))
)

type CollaboratorRole string

var (
	RoleSubtitler = enum.New(CollaboratorRole("subtitler"))
	RoleReviewer  = enum.New(CollaboratorRole("reviewer"))
	RoleApprover  = enum.New(CollaboratorRole("approver"))
)

// JoinRole returns the role a user takes when joining a collaboration in the
// given state, or false for states that accept no new collaborator. The
// being_* states are included since a co-approver may join in-flight work.
func JoinRole(state CollaborationState) (CollaboratorRole, bool) {
	switch state {
	case CollabNeedsSubtitler, CollabBeingSubtitled:
		return RoleSubtitler, true
	case CollabNeedsReviewer, CollabBeingReviewed:
		return RoleReviewer, true
	case CollabNeedsApprover, CollabBeingApproved:
		return RoleApprover, true
	}
	return "", false
}

// JoinedState maps a needs_* state to the being_* state entered once a
// collaborator joins.
func JoinedState(state CollaborationState) (CollaborationState, bool) {
	switch state {
	case CollabNeedsSubtitler:
		return CollabBeingSubtitled, true
	case CollabNeedsReviewer:
		return CollabBeingReviewed, true
	case CollabNeedsApprover:
		return CollabBeingApproved, true
	}
	return "", false
}

// Collaboration tracks the subtitling work on one video and language pair.
// TeamID stays empty until the first collaborator joins, which is also the
// moment the collaboration becomes owned by that collaborator's team.
type Collaboration struct {
	Base

	TeamVideoID string    `gorm:"index:idx_collaboration_unit,unique"`
	TeamVideo   TeamVideo `gorm:"foreignKey:TeamVideoID"`

	LanguageCode string `gorm:"index:idx_collaboration_unit,unique"`

	TeamID sql.NullString `gorm:"index"`

	// ProjectID is denormalized from the team video for dashboard filters.
	ProjectID sql.NullString `gorm:"index"`

	State CollaborationState `gorm:"index"`

	LastActivityDate time.Time
}

// Collaborator records one user's participation in a collaboration. A user
// holds at most one role per collaboration.
type Collaborator struct {
	Base

	CollaborationID string        `gorm:"index:idx_collaborator_unit,unique"`
	Collaboration   Collaboration `gorm:"foreignKey:CollaborationID"`

	UserID string `gorm:"index:idx_collaborator_unit,unique"`
	User   User   `gorm:"foreignKey:UserID"`

	Role CollaboratorRole

	StartDate       time.Time
	EndorsementDate sql.NullTime
	Complete        bool
}

func (c Collaborator) Endorsed() bool {
	return c.EndorsementDate.Valid
}

type CollaborationAction string

var (
	ActionJoin            = enum.New(CollaborationAction("join"))
	ActionLeave           = enum.New(CollaborationAction("leave"))
	ActionEndorse         = enum.New(CollaborationAction("endorse"))
	ActionUnendorse       = enum.New(CollaborationAction("unendorse"))
	ActionRemoved         = enum.New(CollaborationAction("removed"))
	ActionDeadlinePassed  = enum.New(CollaborationAction("deadline_passed"))
	ActionMarkedComplete  = enum.New(CollaborationAction("marked_complete"))
	ActionAddNote         = enum.New(CollaborationAction("add_note"))
	ActionStateChanged    = enum.New(CollaborationAction("state_changed"))
	ActionTeamReassigned  = enum.New(CollaborationAction("team_reassigned"))
	ActionTeamUnassigned  = enum.New(CollaborationAction("team_unassigned"))
)

// CollaborationHistory is the append-only audit trail of a collaboration.
type CollaborationHistory struct {
	Base

	CollaborationID string        `gorm:"index"`
	Collaboration   Collaboration `gorm:"foreignKey:CollaborationID"`

	UserID sql.NullString
	Action CollaborationAction

	FromState CollaborationState
	ToState   CollaborationState
}

// CollaborationNote is a free-form message collaborators leave for each other
// on a collaboration.
type CollaborationNote struct {
	Base

	CollaborationID string        `gorm:"index"`
	Collaboration   Collaboration `gorm:"foreignKey:CollaborationID"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Body string `gorm:"type:text"`
}

// CollaborationLanguage is one language a team works in. Teams with no rows
// here accept work in any of a member's languages.
type CollaborationLanguage struct {
	Base

	TeamID string `gorm:"index:idx_collaboration_language,unique"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	LanguageCode string `gorm:"index:idx_collaboration_language,unique"`
}
