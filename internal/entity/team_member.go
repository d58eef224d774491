package entity

import (
	"database/sql"

	"github.com/ujdhesa/unisubs/pkg/enum"
)

type MemberRole string

var (
	RoleOwner       = enum.New(MemberRole("owner"))
	RoleAdmin       = enum.New(MemberRole("admin"))
	RoleManager     = enum.New(MemberRole("manager"))
	RoleContributor = enum.New(MemberRole("contributor"))
)

// AdminRoles can change team settings and approve subtitles.
var AdminRoles = []MemberRole{RoleOwner, RoleAdmin}

// ManagerRoles can approve subtitles under the manager approval policy.
var ManagerRoles = []MemberRole{RoleOwner, RoleAdmin, RoleManager}

type TeamMember struct {
	TeamID string `gorm:"primaryKey"`
	Team   Team   `gorm:"foreignKey:TeamID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Role MemberRole `gorm:"index"`
}

// MembershipNarrowing restricts a team member to a single language or
// project. Only the task workflow consults narrowings.
type MembershipNarrowing struct {
	Base

	TeamID string
	UserID string

	LanguageCode sql.NullString
	ProjectID    sql.NullString

	CreatedBy string
}
