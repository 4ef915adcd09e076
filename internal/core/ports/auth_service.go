package ports

import (
	"context"

	"github.com/storelane/admin-panel/internal/core/domain"
)

// AuthService exposes sign-up, sign-in and session resolution.
//
// Register success means "account created", not "session established": the
// caller still has to log in. Sign-out is stateless and handled entirely at
// the transport layer, so it does not appear here.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves a bearer token to the identity embedded in it.
	// Returns domain.ErrInvalidToken when there is no valid session. The same
	// code path backs both the request guard and the /auth/me endpoint.
	CurrentUser(token string) (*domain.User, error)
}
