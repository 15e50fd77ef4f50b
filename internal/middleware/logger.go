package middleware

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/pkg/router"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)
		if r == nil {
			return
		}

		xcontext.Logger(ctx).Infof("%s | %s", r.Method, r.URL.Path)
	}
}
