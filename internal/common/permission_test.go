package common

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/entity"
)

func Test_CanPerformReview(t *testing.T) {
	contributor := entity.TeamMember{Role: entity.RoleContributor}
	manager := entity.TeamMember{Role: entity.RoleManager}
	admin := entity.TeamMember{Role: entity.RoleAdmin}

	testcases := []struct {
		name      string
		policy    entity.ReviewPolicy
		member    entity.TeamMember
		isOwnWork bool
		expected  bool
	}{
		{"no review step", entity.ReviewNone, admin, false, false},
		{"peer allows anyone", entity.ReviewPeer, contributor, false, true},
		{"own work never", entity.ReviewPeer, admin, true, false},
		{"manager policy blocks contributor", entity.ReviewManager, contributor, false, false},
		{"manager policy allows manager", entity.ReviewManager, manager, false, true},
		{"admin policy blocks manager", entity.ReviewAdmin, manager, false, false},
		{"admin policy allows admin", entity.ReviewAdmin, admin, false, true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			workflow := &entity.TaskWorkflow{ReviewAllowed: tc.policy}
			require.Equal(t, tc.expected, CanPerformReview(workflow, tc.member, tc.isOwnWork))
		})
	}
}

func Test_CanPerformApprove(t *testing.T) {
	contributor := entity.TeamMember{Role: entity.RoleContributor}
	manager := entity.TeamMember{Role: entity.RoleManager}
	owner := entity.TeamMember{Role: entity.RoleOwner}

	testcases := []struct {
		name     string
		policy   entity.ApprovePolicy
		member   entity.TeamMember
		expected bool
	}{
		{"no approval step", entity.ApproveNone, owner, false},
		{"manager policy blocks contributor", entity.ApproveManager, contributor, false},
		{"manager policy allows manager", entity.ApproveManager, manager, true},
		{"admin policy blocks manager", entity.ApproveAdmin, manager, false},
		{"admin policy allows owner", entity.ApproveAdmin, owner, true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			workflow := &entity.TaskWorkflow{ApproveAllowed: tc.policy}
			require.Equal(t, tc.expected, CanPerformApprove(workflow, tc.member))
		})
	}
}

func Test_LanguagesForMember(t *testing.T) {
	// With no team languages every member language qualifies.
	require.Equal(t,
		[]string{"en", "fr"},
		LanguagesForMember([]string{"en", "fr"}, nil))

	// Otherwise only the intersection.
	require.Equal(t,
		[]string{"fr"},
		LanguagesForMember([]string{"en", "fr"}, []string{"fr", "es"}))

	require.Empty(t, LanguagesForMember([]string{"de"}, []string{"fr", "es"}))
}
