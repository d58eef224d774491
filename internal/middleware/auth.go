package middleware

import (
	"context"
	"strings"

	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/pkg/authenticator"
	"github.com/ujdhesa/unisubs/pkg/errorx"
	"github.com/ujdhesa/unisubs/pkg/router"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

// WithAuthentication resolves the access token from the Authorization header
// or the access token cookie and stores the user id on the context. A
// missing or invalid token leaves the request anonymous.
func WithAuthentication() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if token := tokenFromRequest(ctx); token != "" {
			engine, ok := xcontext.TokenEngine(ctx).(authenticator.TokenEngine[model.AccessToken])
			if !ok {
				return ctx, nil
			}

			info, err := engine.Verify(token)
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
				return ctx, nil
			}

			return xcontext.WithRequestUserID(ctx, info.ID), nil
		}

		if userID := userIDFromSession(ctx); userID != "" {
			return xcontext.WithRequestUserID(ctx, userID), nil
		}

		return ctx, nil
	}
}

func userIDFromSession(ctx context.Context) string {
	store := xcontext.SessionStore(ctx)
	req := xcontext.HTTPRequest(ctx)
	if store == nil || req == nil {
		return ""
	}

	session, err := store.Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	userID, _ := session.Values["user_id"].(string)
	return userID
}

// Authenticate rejects anonymous requests.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func tokenFromRequest(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	if auth := req.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
