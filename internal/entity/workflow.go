package entity

import (
	"github.com/ujdhesa/unisubs/pkg/enum"
	"golang.org/x/exp/slices"
)

type CompletionPolicy string

var (
	CompletionAnyone   = enum.New(CompletionPolicy("anyone"))
	CompletionReviewer = enum.New(CompletionPolicy("reviewer"))
	CompletionApprover = enum.New(CompletionPolicy("approver"))
)

type ReviewPolicy string

var (
	ReviewNone    = enum.New(ReviewPolicy("none"))
	ReviewPeer    = enum.New(ReviewPolicy("peer"))
	ReviewManager = enum.New(ReviewPolicy("manager"))
	ReviewAdmin   = enum.New(ReviewPolicy("admin"))
)

type ApprovePolicy string

var (
	ApproveNone    = enum.New(ApprovePolicy("none"))
	ApproveManager = enum.New(ApprovePolicy("manager"))
	ApproveAdmin   = enum.New(ApprovePolicy("admin"))
)

// Workflow is the capability surface shared by the three workflow styles. A
// team resolves to exactly one variant depending on its workflow_style.
type Workflow interface {
	NeedsReview() bool
	NeedsApproval() bool
	MemberCanApprove(member TeamMember) bool
}

// NoWorkflow is the workflow of teams whose videos behave as if they did not
// belong to a team. Unlike the other two variants it is not stored.
type NoWorkflow struct {
	TeamID string
}

func (w NoWorkflow) NeedsReview() bool   { return false }
func (w NoWorkflow) NeedsApproval() bool { return false }

func (w NoWorkflow) MemberCanApprove(member TeamMember) bool {
	return false
}

// TaskWorkflow is the policy record of teams using the legacy per-step task
// workflow.
type TaskWorkflow struct {
	Base

	TeamID string `gorm:"index:,unique"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	AutocreateSubtitle  bool
	AutocreateTranslate bool

	ReviewAllowed  ReviewPolicy
	ApproveAllowed ApprovePolicy
}

func (w TaskWorkflow) NeedsReview() bool {
	return w.ReviewAllowed != ReviewNone
}

func (w TaskWorkflow) NeedsApproval() bool {
	return w.ApproveAllowed != ApproveNone
}

func (w TaskWorkflow) MemberCanApprove(member TeamMember) bool {
	return slices.Contains(ManagerRoles, member.Role)
}

// CollaborationWorkflow is the policy record of teams using the collaboration
// workflow.
type CollaborationWorkflow struct {
	Base

	TeamID string `gorm:"index:,unique"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	CompletionPolicy CompletionPolicy

	OnCompletePublishLatest  bool
	OnCompleteNotifyManagers bool

	Only1Subtitler bool `gorm:"default:true"`
	Only1Reviewer  bool `gorm:"default:true"`
	Only1Approver  bool `gorm:"default:true"`

	LimitOpenTasks int
}

func (w CollaborationWorkflow) NeedsReview() bool {
	return w.CompletionPolicy == CompletionReviewer ||
		w.CompletionPolicy == CompletionApprover
}

func (w CollaborationWorkflow) NeedsApproval() bool {
	return w.CompletionPolicy == CompletionApprover
}

func (w CollaborationWorkflow) MemberCanApprove(member TeamMember) bool {
	return slices.Contains(ManagerRoles, member.Role)
}
