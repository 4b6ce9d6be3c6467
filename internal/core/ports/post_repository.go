package ports

import (
	"context"

	"github.com/portfolio/blog-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts. The store owns the
// records and guarantees per-record atomicity only; concurrent writes to the
// same id resolve last-write-wins.
type PostRepository interface {
	// FindAll returns every post in store order.
	FindAll(ctx context.Context) ([]*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	// Create assigns a fresh monotonic id, persists the post, and returns it.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// Update overwrites the stored record for post.ID.
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
}
