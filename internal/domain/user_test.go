package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/testutil"
)

func newTestUserDomain() UserDomain {
	return NewUserDomain(repository.NewUserRepository())
}

func Test_userDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userDomain := newTestUserDomain()

	_, err := userDomain.Create(ctx, &model.CreateUserRequest{})
	require.Equal(t, "Not allow an empty name", err.Error())

	created, err := userDomain.Create(ctx, &model.CreateUserRequest{
		Name:      "user5",
		Languages: []string{"en", "de"},
	})
	require.NoError(t, err)

	got, err := userDomain.Get(ctx, &model.GetUserRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "user5", got.User.Name)
	require.Equal(t, []string{"en", "de"}, got.User.Languages)

	_, err = userDomain.Get(ctx, &model.GetUserRequest{ID: "nobody"})
	require.Equal(t, "Not found user", err.Error())

	// With no explicit id the request falls back to the authenticated user.
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	me, err := userDomain.Get(ctxUser1, &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, me.User.ID)
}

func Test_userDomain_UpdateLanguages(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	userDomain := newTestUserDomain()

	ctxUser4 := testutil.NewMockContextWithUserID(ctx, testutil.User4.ID)
	_, err := userDomain.UpdateLanguages(ctxUser4, &model.UpdateUserLanguagesRequest{
		Languages: []string{"en", "fr", "es"},
	})
	require.NoError(t, err)

	got, err := userDomain.Get(ctxUser4, &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"en", "fr", "es"}, got.User.Languages)
}
