package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type TeamMemberRepository interface {
	Create(ctx context.Context, member *entity.TeamMember) error
	Get(ctx context.Context, teamID, userID string) (*entity.TeamMember, error)
	GetListByTeamID(ctx context.Context, teamID string) ([]entity.TeamMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.TeamMember, error)
	UpdateRole(ctx context.Context, teamID, userID string, role entity.MemberRole) error
	Delete(ctx context.Context, teamID, userID string) error
	Count(ctx context.Context, teamID string) (int64, error)
}

type teamMemberRepository struct{}

func NewTeamMemberRepository() *teamMemberRepository {
	return &teamMemberRepository{}
}

func (r *teamMemberRepository) Create(ctx context.Context, member *entity.TeamMember) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *teamMemberRepository) Get(ctx context.Context, teamID, userID string) (*entity.TeamMember, error) {
	var result entity.TeamMember
	err := xcontext.DB(ctx).
		Take(&result, "team_id=? AND user_id=?", teamID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *teamMemberRepository) GetListByTeamID(ctx context.Context, teamID string) ([]entity.TeamMember, error) {
	var result []entity.TeamMember
	if err := xcontext.DB(ctx).Find(&result, "team_id=?", teamID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *teamMemberRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.TeamMember, error) {
	var result []entity.TeamMember
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *teamMemberRepository) UpdateRole(ctx context.Context, teamID, userID string, role entity.MemberRole) error {
	return xcontext.DB(ctx).
		Model(&entity.TeamMember{}).
		Where("team_id=? AND user_id=?", teamID, userID).
		Update("role", role).Error
}

func (r *teamMemberRepository) Delete(ctx context.Context, teamID, userID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.TeamMember{}, "team_id=? AND user_id=?", teamID, userID).Error
}

func (r *teamMemberRepository) Count(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.TeamMember{}).
		Where("team_id=?", teamID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
