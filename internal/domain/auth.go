package domain

import (
	"context"
	"errors"

	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/authenticator"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo           repository.UserRepository
	accessTokenEngine  authenticator.TokenEngine[model.AccessToken]
	refreshTokenEngine authenticator.TokenEngine[model.RefreshToken]
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	accessTokenEngine authenticator.TokenEngine[model.AccessToken],
	refreshTokenEngine authenticator.TokenEngine[model.RefreshToken],
) *authDomain {
	return &authDomain{
		userRepo:           userRepo,
		accessTokenEngine:  accessTokenEngine,
		refreshTokenEngine: refreshTokenEngine,
	}
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := d.accessTokenEngine.Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	refreshToken, err := d.refreshTokenEngine.Generate(user.ID, model.RefreshToken{UserID: user.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	info, err := d.refreshTokenEngine.Verify(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	user, err := d.userRepo.GetByID(ctx, info.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := d.accessTokenEngine.Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{AccessToken: accessToken}, nil
}
