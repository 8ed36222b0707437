package middleware

import (
	"context"
	"strings"

	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/router"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

// AuthVerifier resolves the requester identity from the access token. A
// request without a token passes through anonymously, Authenticate decides
// whether that is acceptable for a route.
type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := a.getAccessToken(ctx)
		if token == "" {
			return ctx, nil
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func (a *AuthVerifier) getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}
