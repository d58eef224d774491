package common

import (
	"context"
	"fmt"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/repository"
)

// WorkflowResolver maps a team to its active workflow variant based on the
// team's workflow style. Policy records are created lazily with defaults the
// first time a team's workflow is consulted.
type WorkflowResolver struct {
	teamRepo     repository.TeamRepository
	workflowRepo repository.WorkflowRepository
}

func NewWorkflowResolver(
	teamRepo repository.TeamRepository,
	workflowRepo repository.WorkflowRepository,
) *WorkflowResolver {
	return &WorkflowResolver{teamRepo: teamRepo, workflowRepo: workflowRepo}
}

func (resolver *WorkflowResolver) Resolve(ctx context.Context, teamID string) (entity.Workflow, error) {
	team, err := resolver.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return resolver.ResolveForTeam(ctx, team)
}

func (resolver *WorkflowResolver) ResolveForTeam(ctx context.Context, team *entity.Team) (entity.Workflow, error) {
	switch team.WorkflowStyle {
	case entity.WorkflowStyleTasks:
		workflow, err := resolver.workflowRepo.GetTaskWorkflow(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		return *workflow, nil

	case entity.WorkflowStyleCollaboration:
		workflow, err := resolver.workflowRepo.GetCollaborationWorkflow(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		return *workflow, nil

	case entity.WorkflowStyleNone:
		return entity.NoWorkflow{TeamID: team.ID}, nil
	}

	return nil, fmt.Errorf("invalid workflow style %s of team %s", team.WorkflowStyle, team.ID)
}
