package common

import (
	"github.com/ujdhesa/unisubs/internal/entity"
	"golang.org/x/exp/slices"
)

// CanPerformReview reports whether a member may take a review task under the
// team's review policy. A member never reviews their own work.
func CanPerformReview(workflow *entity.TaskWorkflow, member entity.TeamMember, isOwnWork bool) bool {
	if isOwnWork {
		return false
	}

	switch workflow.ReviewAllowed {
	case entity.ReviewPeer:
		return true
	case entity.ReviewManager:
		return slices.Contains(entity.ManagerRoles, member.Role)
	case entity.ReviewAdmin:
		return slices.Contains(entity.AdminRoles, member.Role)
	}

	return false
}

// CanPerformApprove reports whether a member may take an approve task under
// the team's approval policy.
func CanPerformApprove(workflow *entity.TaskWorkflow, member entity.TeamMember) bool {
	switch workflow.ApproveAllowed {
	case entity.ApproveManager:
		return slices.Contains(entity.ManagerRoles, member.Role)
	case entity.ApproveAdmin:
		return slices.Contains(entity.AdminRoles, member.Role)
	}

	return false
}

// LanguagesForMember returns the languages a member may work in for a team.
// When the team declares working languages the result is the intersection
// with the member's languages, otherwise all the member's languages qualify.
func LanguagesForMember(userLanguages, teamLanguages []string) []string {
	if len(teamLanguages) == 0 {
		return userLanguages
	}

	var result []string
	for _, code := range userLanguages {
		if slices.Contains(teamLanguages, code) {
			result = append(result, code)
		}
	}

	return result
}
