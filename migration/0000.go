package migration

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

// migrate0000 creates the database with the latest version.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Team{},
		&entity.TeamMember{},
		&entity.MembershipNarrowing{},
		&entity.Project{},
		&entity.ProjectSharedTeam{},
		&entity.TeamVideo{},
		&entity.TaskWorkflow{},
		&entity.CollaborationWorkflow{},
		&entity.Collaboration{},
		&entity.Collaborator{},
		&entity.CollaborationHistory{},
		&entity.CollaborationNote{},
		&entity.CollaborationLanguage{},
		&entity.Task{},
		&entity.TeamLanguagePreference{},
		&entity.SubtitleLanguage{},
		&entity.SubtitleVersion{},
		&entity.BillingRecord{},
		&entity.Migration{},
	)
}
