package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/ujdhesa/unisubs/config"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/migration"
	"github.com/ujdhesa/unisubs/pkg/authenticator"
	"github.com/ujdhesa/unisubs/pkg/logger"
	"github.com/ujdhesa/unisubs/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "access-token-secret",
				Expiration: time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Secret:     "refresh-token-secret",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "session_id",
		},
		SearchServer: config.SearchServerConfigs{
			RPCName: "search",
		},
		Workflow: config.WorkflowConfigs{
			DashboardCanJoinLimit:  10,
			DashboardCanStartLimit: 10,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ERROR))
	ctx = xcontext.WithTokenEngine(ctx,
		authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken))
	ctx = xcontext.WithSessionStore(ctx,
		sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = NewMockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
