package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/config"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/authenticator"
	"github.com/ujdhesa/unisubs/pkg/testutil"
)

func newTestAuthDomain() AuthDomain {
	return NewAuthDomain(
		repository.NewUserRepository(),
		authenticator.NewTokenEngine[model.AccessToken](config.TokenConfigs{
			Name:       "access_token",
			Secret:     "access-token-secret",
			Expiration: time.Minute,
		}),
		authenticator.NewTokenEngine[model.RefreshToken](config.TokenConfigs{
			Name:       "refresh_token",
			Secret:     "refresh-token-secret",
			Expiration: time.Minute,
		}),
	)
}

func Test_authDomain_LoginAndRefresh(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	authDomain := newTestAuthDomain()

	_, err := authDomain.Login(ctx, &model.LoginRequest{Name: "nobody"})
	require.Equal(t, "Not found user", err.Error())

	login, err := authDomain.Login(ctx, &model.LoginRequest{Name: testutil.User1.Name})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)

	refreshed, err := authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: "garbage",
	})
	require.Equal(t, "Invalid refresh token", err.Error())

	// An access token is not a refresh token.
	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	require.Equal(t, "Invalid refresh token", err.Error())
}
