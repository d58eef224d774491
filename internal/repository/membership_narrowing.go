package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type MembershipNarrowingRepository interface {
	Create(ctx context.Context, narrowing *entity.MembershipNarrowing) error
	GetByID(ctx context.Context, id string) (*entity.MembershipNarrowing, error)
	GetList(ctx context.Context, teamID, userID string) ([]entity.MembershipNarrowing, error)
	DeleteByID(ctx context.Context, id string) error
}

type membershipNarrowingRepository struct{}

func NewMembershipNarrowingRepository() *membershipNarrowingRepository {
	return &membershipNarrowingRepository{}
}

func (r *membershipNarrowingRepository) Create(ctx context.Context, narrowing *entity.MembershipNarrowing) error {
	return xcontext.DB(ctx).Create(narrowing).Error
}

func (r *membershipNarrowingRepository) GetByID(ctx context.Context, id string) (*entity.MembershipNarrowing, error) {
	var result entity.MembershipNarrowing
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *membershipNarrowingRepository) GetList(
	ctx context.Context, teamID, userID string,
) ([]entity.MembershipNarrowing, error) {
	var result []entity.MembershipNarrowing
	err := xcontext.DB(ctx).
		Find(&result, "team_id=? AND user_id=?", teamID, userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *membershipNarrowingRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.MembershipNarrowing{}, "id=?", id).Error
}
