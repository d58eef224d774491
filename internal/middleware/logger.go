package middleware

import (
	"context"

	"github.com/ujdhesa/unisubs/pkg/router"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

// Logger logs every finished request.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		xcontext.Logger(ctx).Infof("%s | %s", req.Method, req.URL.Path)
	}
}
