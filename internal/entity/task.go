package entity

import (
	"database/sql"
	"time"

	"github.com/ujdhesa/unisubs/pkg/enum"
)

type TaskType string

var (
	TaskSubtitle  = enum.New(TaskType("subtitle"))
	TaskTranslate = enum.New(TaskType("translate"))
	TaskReview    = enum.New(TaskType("review"))
	TaskApprove   = enum.New(TaskType("approve"))
)

type TaskApproved string

var (
	TaskInProgress       = enum.New(TaskApproved("in_progress"))
	TaskApprovedApproved = enum.New(TaskApproved("approved"))
	TaskApprovedRejected = enum.New(TaskApproved("rejected"))
)

// Task is one step of the legacy per-step workflow. A task is open while
// CompletedDate is null and Deleted is false.
type Task struct {
	Base

	TeamID string `gorm:"index"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	TeamVideoID string    `gorm:"index"`
	TeamVideo   TeamVideo `gorm:"foreignKey:TeamVideoID"`

	// LanguageCode is empty for subtitle tasks in the video's primary audio
	// language until the language is known.
	LanguageCode string `gorm:"index"`

	Type TaskType `gorm:"index"`

	AssigneeUserID sql.NullString `gorm:"index"`

	Approved sql.NullString

	SubtitleVersionID sql.NullString

	Priority int

	ExpirationDate sql.NullTime
	CompletedDate  sql.NullTime
	Deleted        bool `gorm:"index"`
}

func (t Task) Open() bool {
	return !t.Deleted && !t.CompletedDate.Valid
}

// Expired reports whether an assigned task has passed its expiration date.
// Unassigned tasks never expire.
func (t Task) Expired(now time.Time) bool {
	return t.AssigneeUserID.Valid && t.ExpirationDate.Valid &&
		now.After(t.ExpirationDate.Time)
}

// TeamLanguagePreference marks a language a team wants translation tasks
// autocreated for.
type TeamLanguagePreference struct {
	Base

	TeamID string `gorm:"index:idx_team_language_preference,unique"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	LanguageCode string `gorm:"index:idx_team_language_preference,unique"`
}
