package ports

import (
	"context"

	"github.com/portfolio/blog-api/internal/core/domain"
)

// AuthService handles registration and login. Both return a signed token bound
// to the persisted principal.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
