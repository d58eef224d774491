package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.CreateUserResponse, error)
	Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateLanguages(ctx context.Context, req *model.UpdateUserLanguagesRequest) (*model.UpdateUserLanguagesResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{userRepo: userRepo}
}

func (d *userDomain) Create(
	ctx context.Context, req *model.CreateUserRequest,
) (*model.CreateUserResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	user := &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      req.Name,
		Languages: req.Languages,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateUserResponse{ID: user.ID}, nil
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	id := req.ID
	if id == "" {
		id = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: convertUser(user)}, nil
}

func (d *userDomain) UpdateLanguages(
	ctx context.Context, req *model.UpdateUserLanguagesRequest,
) (*model.UpdateUserLanguagesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	err := d.userRepo.UpdateByID(ctx, userID, &entity.User{Languages: req.Languages})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user languages: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserLanguagesResponse{}, nil
}

func convertUser(user *entity.User) model.User {
	return model.User{
		ID:        user.ID,
		Name:      user.Name,
		Languages: user.Languages,
	}
}
