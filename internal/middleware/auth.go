package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/token"
	"github.com/enqueter/backend/pkg/xcontext"
)

type AuthVerifier struct {
	engine token.Engine
}

func NewAuthVerifier(engine token.Engine) *AuthVerifier {
	return &AuthVerifier{engine: engine}
}

// Middleware resolves the bearer token into the request user id. A missing
// header leaves the request anonymous; only an invalid token is rejected.
func (v *AuthVerifier) Middleware() func(ctx context.Context, r *http.Request) (context.Context, error) {
	return func(ctx context.Context, r *http.Request) (context.Context, error) {
		scheme, accessToken, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || scheme != "Bearer" {
			return ctx, nil
		}

		userID, err := v.engine.Verify(accessToken)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, userID), nil
	}
}

// Authenticate rejects anonymous requests. It must come after the
// AuthVerifier middleware in the chain.
func Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	if xcontext.RequestUserID(ctx) == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return ctx, nil
}
