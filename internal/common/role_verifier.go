package common

import (
	"context"
	"errors"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TeamRoleVerifier checks that the requesting user holds one of a set of
// roles in a team.
type TeamRoleVerifier struct {
	teamMemberRepo repository.TeamMemberRepository
}

func NewTeamRoleVerifier(teamMemberRepo repository.TeamMemberRepository) *TeamRoleVerifier {
	return &TeamRoleVerifier{teamMemberRepo: teamMemberRepo}
}

func (verifier *TeamRoleVerifier) Verify(
	ctx context.Context, teamID string, roles ...entity.MemberRole,
) error {
	userID := xcontext.RequestUserID(ctx)
	member, err := verifier.teamMemberRepo.Get(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return errorx.Unknown
	}

	if !slices.Contains(roles, member.Role) {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

// Member returns the requesting user's membership in the team, or a
// permission error when the user is not a member.
func (verifier *TeamRoleVerifier) Member(ctx context.Context, teamID string) (*entity.TeamMember, error) {
	userID := xcontext.RequestUserID(ctx)
	member, err := verifier.teamMemberRepo.Get(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team member: %v", err)
		return nil, errorx.Unknown
	}

	return member, nil
}
