package domain

import (
	"context"
	"errors"
	"time"

	"github.com/ujdhesa/unisubs/internal/common"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"gorm.io/gorm"
)

type BillingDomain interface {
	GetRecords(ctx context.Context, req *model.GetBillingRecordsRequest) (*model.GetBillingRecordsResponse, error)
}

type billingDomain struct {
	teamRepo     repository.TeamRepository
	billingRepo  repository.BillingRecordRepository
	roleVerifier *common.TeamRoleVerifier
}

func NewBillingDomain(
	teamRepo repository.TeamRepository,
	billingRepo repository.BillingRecordRepository,
	teamMemberRepo repository.TeamMemberRepository,
) *billingDomain {
	return &billingDomain{
		teamRepo:     teamRepo,
		billingRepo:  billingRepo,
		roleVerifier: common.NewTeamRoleVerifier(teamMemberRepo),
	}
}

func (d *billingDomain) GetRecords(
	ctx context.Context, req *model.GetBillingRecordsRequest,
) (*model.GetBillingRecordsResponse, error) {
	team, err := d.teamRepo.GetBySlug(ctx, req.TeamSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found team")
		}

		xcontext.Logger(ctx).Errorf("Cannot get team: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, team.ID, entity.AdminRoles...); err != nil {
		return nil, err
	}

	records, err := d.billingRepo.GetListByTeamID(ctx, team.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get billing records: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetBillingRecordsResponse{}
	for _, record := range records {
		converted := model.BillingRecord{
			ID:               record.ID,
			TeamID:           record.TeamID,
			VideoID:          record.VideoID,
			LanguageCode:     record.LanguageCode,
			MinutesProcessed: record.MinutesProcessed,
			WasOriginal:      record.WasOriginal,
			Source:           record.Source,
			ProcessedDate:    record.ProcessedDate.Format(time.RFC3339),
		}

		if record.UserID.Valid {
			converted.UserID = record.UserID.String
		}

		resp.Records = append(resp.Records, converted)
	}

	return resp, nil
}
