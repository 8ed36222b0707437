package authenticator

import (
	"context"
	"time"
)

type TokenEngine interface {
	// Generate signs obj into a token valid for expiration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify checks the token signature and expiry, then unmarshals the
	// signed object into obj.
	Verify(token string, obj any) error
}

type OAuth2User struct {
	ID       string
	Email    string
	Username string
}

type IOAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
	VerifyAuthorizationCode(ctx context.Context, code, redirectURI string) (OAuth2User, error)
}
