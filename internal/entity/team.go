package entity

import (
	"database/sql"

	"github.com/ujdhesa/unisubs/pkg/enum"
)

type WorkflowStyle string

var (
	WorkflowStyleNone          = enum.New(WorkflowStyle("none"))
	WorkflowStyleTasks         = enum.New(WorkflowStyle("tasks"))
	WorkflowStyleCollaboration = enum.New(WorkflowStyle("collaboration"))
)

type Team struct {
	Base

	Name        string `gorm:"index:,unique"`
	Slug        string `gorm:"index:,unique"`
	Description string

	// WorkflowStyle selects which state machine governs this team's videos.
	WorkflowStyle WorkflowStyle

	ProjectsEnabled bool

	// TaskExpiration is the number of days before an assigned task expires.
	// Null means tasks never expire.
	TaskExpiration sql.NullInt64

	// MaxTasksPerMember caps the open tasks a single member may hold.
	MaxTasksPerMember sql.NullInt64
}

func (t *Team) TasksEnabled() bool {
	return t.WorkflowStyle == WorkflowStyleTasks
}

func (t *Team) CollaborationEnabled() bool {
	return t.WorkflowStyle == WorkflowStyleCollaboration
}

type Project struct {
	Base

	TeamID string
	Team   Team `gorm:"foreignKey:TeamID"`

	Name string
	Slug string
}

// ProjectSharedTeam lets another team work on collaborations in a project it
// does not own.
type ProjectSharedTeam struct {
	ProjectID string  `gorm:"primaryKey"`
	Project   Project `gorm:"foreignKey:ProjectID"`

	TeamID string `gorm:"primaryKey"`
	Team   Team   `gorm:"foreignKey:TeamID"`
}

type TeamVideo struct {
	Base

	TeamID string
	Team   Team `gorm:"foreignKey:TeamID"`

	ProjectID string
	Project   Project `gorm:"foreignKey:ProjectID"`

	VideoID string `gorm:"index:,unique"`
	Title   string

	PrimaryAudioLanguageCode string
	DurationSeconds          int
}
