package ports

import (
	"context"
	"time"

	"github.com/portfolio/blog-api/internal/core/domain"
)

// Principal is the verified identity attached to an authenticated request.
// The boundary layer resolves it from the bearer token; the service never
// parses or verifies tokens itself.
type Principal struct {
	Username string
	Role     domain.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// PostInput carries the client-supplied fields for create and update.
type PostInput struct {
	Title   string
	Content string
}

// PostView is the read model returned to the transport layer.
type PostView struct {
	ID             int64
	Title          string
	Content        string
	CreatedAt      time.Time
	AuthorUsername string
}

// PostService defines the authorization-aware use-case operations on posts.
// Reads are public; create requires any authenticated principal; update is
// author-only; delete is author-or-admin.
type PostService interface {
	ListPosts(ctx context.Context) ([]PostView, error)
	GetPost(ctx context.Context, id int64) (*PostView, error)
	CreatePost(ctx context.Context, principal Principal, input PostInput) (*PostView, error)
	UpdatePost(ctx context.Context, principal Principal, id int64, input PostInput) (*PostView, error)
	DeletePost(ctx context.Context, principal Principal, id int64) error
}
