package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio/blog-api/internal/api/metrics"
	"github.com/portfolio/blog-api/internal/core/domain"
	"github.com/portfolio/blog-api/internal/core/ports"
)

// PostCache abstracts the read-through cache (Redis). All methods are best
// effort; the repository stays authoritative.
type PostCache interface {
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Set(ctx context.Context, post *domain.Post) error
	Invalidate(ctx context.Context, id int64) error
}

// PostService implements the authorization-aware post operations. It is
// stateless between calls; all mutable state lives in the repositories.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	cache  PostCache
	logger zerolog.Logger
}

// NewPostService builds a PostService. cache may be nil, in which case every
// read goes to the repository.
func NewPostService(posts ports.PostRepository, users ports.UserRepository, cache PostCache, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, cache: cache, logger: logger}
}

// ListPosts returns every post. Public: no authorization check.
func (s *PostService) ListPosts(ctx context.Context) ([]ports.PostView, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.PostView, len(posts))
	for i, p := range posts {
		views[i] = toView(p)
	}
	return views, nil
}

// GetPost returns a single post by id. Public: no authorization check.
func (s *PostService) GetPost(ctx context.Context, id int64) (*ports.PostView, error) {
	post, err := s.findCached(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(post)
	return &view, nil
}

// CreatePost persists a new post authored by the principal. Any authenticated
// principal may create; the author reference is resolved from the store, never
// taken from request input.
func (s *PostService) CreatePost(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
	author, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		// Should not happen for a principal minted from a valid token.
		return nil, err
	}

	post, err := domain.NewPost(input.Title, input.Content, author, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("author", principal.Username).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.logger.Info().Int64("post_id", created.ID).Str("author", created.AuthorUsername).Msg("post created")

	view := toView(created)
	return &view, nil
}

// UpdatePost overwrites title and content of an existing post. Only the author
// may update; the admin role grants no edit rights on others' posts. CreatedAt
// is deliberately left unchanged.
func (s *PostService) UpdatePost(ctx context.Context, principal ports.Principal, id int64, input ports.PostInput) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !post.IsAuthor(principal.Username) {
		return nil, fmt.Errorf("%w: only the author can update this post", domain.ErrForbidden)
	}

	if err := post.Rewrite(input.Title, input.Content); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("post_id", id).Msg("failed to update post")
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Int64("post_id", id).Str("author", post.AuthorUsername).Msg("post updated")

	view := toView(post)
	return &view, nil
}

// DeletePost removes a post. Allowed for the author or any admin.
func (s *PostService) DeletePost(ctx context.Context, principal ports.Principal, id int64) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	isAuthor := post.IsAuthor(principal.Username)
	if !isAuthor && !principal.IsAdmin() {
		return fmt.Errorf("%w: not the author and not an admin", domain.ErrForbidden)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("post_id", id).Msg("failed to delete post")
		return err
	}

	s.invalidate(ctx, id)

	by := "author"
	if !isAuthor {
		by = "admin"
	}
	metrics.PostsDeletedTotal.WithLabelValues(by).Inc()
	s.logger.Info().Int64("post_id", id).Str("deleted_by", principal.Username).Str("as", by).Msg("post deleted")

	return nil
}

// findCached consults the cache before the repository and fills it on a miss.
// Cache failures are logged and ignored.
func (s *PostService) findCached(ctx context.Context, id int64) (*domain.Post, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("post_id", id).Msg("post cache read failed")
		} else if cached != nil {
			metrics.PostCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.PostCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, post); err != nil {
			s.logger.Warn().Err(err).Int64("post_id", id).Msg("post cache write failed")
		}
	}
	return post, nil
}

func (s *PostService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("post_id", id).Msg("post cache invalidation failed")
	}
}

func toView(p *domain.Post) ports.PostView {
	return ports.PostView{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		CreatedAt:      p.CreatedAt,
		AuthorUsername: p.AuthorUsername,
	}
}
