package middleware

import (
	"context"
	"strings"

	"github.com/birdsofspace/spacebirdz-backend/config"
	"github.com/birdsofspace/spacebirdz-backend/internal/model"
	"github.com/birdsofspace/spacebirdz-backend/pkg/authenticator"
	"github.com/birdsofspace/spacebirdz-backend/pkg/errorx"
	"github.com/birdsofspace/spacebirdz-backend/pkg/router"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
)

// AuthVerifier resolves the caller identity from the access token. Identity
// verification itself happened at token issuance; every ledger operation only
// needs a stable authenticated id.
type AuthVerifier struct {
	tokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewAuthVerifier(cfg config.TokenConfigs) *AuthVerifier {
	return &AuthVerifier{
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg),
	}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := a.extractToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		accessToken, err := a.tokenEngine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot verify the access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func (a *AuthVerifier) extractToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	name := xcontext.Configs(ctx).Auth.AccessToken.Name
	if cookie, err := r.Cookie(name); err == nil {
		return cookie.Value
	}

	return ""
}
