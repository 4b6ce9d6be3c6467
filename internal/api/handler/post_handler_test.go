package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/portfolio/blog-api/internal/core/domain"
	"github.com/portfolio/blog-api/internal/core/ports"
)

type stubPostService struct {
	listFn   func(ctx context.Context) ([]ports.PostView, error)
	getFn    func(ctx context.Context, id int64) (*ports.PostView, error)
	createFn func(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error)
	updateFn func(ctx context.Context, principal ports.Principal, id int64, input ports.PostInput) (*ports.PostView, error)
	deleteFn func(ctx context.Context, principal ports.Principal, id int64) error
}

func (s *stubPostService) ListPosts(ctx context.Context) ([]ports.PostView, error) {
	return s.listFn(ctx)
}

func (s *stubPostService) GetPost(ctx context.Context, id int64) (*ports.PostView, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) CreatePost(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
	return s.createFn(ctx, principal, input)
}

func (s *stubPostService) UpdatePost(ctx context.Context, principal ports.Principal, id int64, input ports.PostInput) (*ports.PostView, error) {
	return s.updateFn(ctx, principal, id, input)
}

func (s *stubPostService) DeletePost(ctx context.Context, principal ports.Principal, id int64) error {
	return s.deleteFn(ctx, principal, id)
}

func newPostContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asPrincipal(c echo.Context, username string, role domain.Role) {
	c.Set("username", username)
	c.Set("role", string(role))
}

func sampleView() *ports.PostView {
	return &ports.PostView{
		ID:             1,
		Title:          "First post",
		Content:        "hello world",
		CreatedAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		AuthorUsername: "alice",
	}
}

func TestPostHandler_List(t *testing.T) {
	stub := &stubPostService{
		listFn: func(ctx context.Context) ([]ports.PostView, error) {
			return []ports.PostView{*sampleView()}, nil
		},
	}
	h := NewPostHandler(stub)

	c, rec := newPostContext(t, http.MethodGet, "/api/posts", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listPostsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Title != "First post" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestPostHandler_List_Empty(t *testing.T) {
	stub := &stubPostService{
		listFn: func(ctx context.Context) ([]ports.PostView, error) {
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	c, rec := newPostContext(t, http.MethodGet, "/api/posts", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listPostsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data == nil {
		t.Fatalf("expected empty array, got null")
	}
	if len(resp.Data) != 0 {
		t.Fatalf("expected no posts, got %d", len(resp.Data))
	}
}

func TestPostHandler_Get(t *testing.T) {
	stub := &stubPostService{
		getFn: func(ctx context.Context, id int64) (*ports.PostView, error) {
			if id != 7 {
				t.Fatalf("expected id 7, got %d", id)
			}
			return sampleView(), nil
		},
	}
	h := NewPostHandler(stub)

	c, rec := newPostContext(t, http.MethodGet, "/api/posts/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	stub := &stubPostService{
		getFn: func(ctx context.Context, id int64) (*ports.PostView, error) {
			return nil, domain.ErrPostNotFound
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodGet, "/api/posts/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound to propagate, got %v", err)
	}
}

func TestPostHandler_Get_InvalidID(t *testing.T) {
	stub := &stubPostService{
		getFn: func(ctx context.Context, id int64) (*ports.PostView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		c, _ := newPostContext(t, http.MethodGet, "/api/posts/"+raw, "")
		c.SetParamNames("id")
		c.SetParamValues(raw)

		var he *echo.HTTPError
		if err := h.Get(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400 HTTPError, got %v", raw, err)
		}
	}
}

func TestPostHandler_Create(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
			if principal.Username != "alice" || principal.Role != domain.RoleUser {
				t.Fatalf("unexpected principal: %+v", principal)
			}
			if input.Title != "First post" || input.Content != "hello world" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleView(), nil
		},
	}
	h := NewPostHandler(stub)

	c, rec := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"First post","content":"hello world"}`)
	asPrincipal(c, "alice", domain.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp postResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 1 || resp.AuthorUsername != "alice" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestPostHandler_Create_NoPrincipal(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"First post","content":"hello world"}`)

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestPostHandler_Create_UnknownRoleClaim(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"First post","content":"hello world"}`)
	c.Set("username", "alice")
	c.Set("role", "superuser")

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestPostHandler_Create_ShortTitle(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodPost, "/api/posts",
		`{"title":"Hey","content":"hello world"}`)
	asPrincipal(c, "alice", domain.RoleUser)

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestPostHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, principal ports.Principal, input ports.PostInput) (*ports.PostView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodPost, "/api/posts", "not-json")
	asPrincipal(c, "alice", domain.RoleUser)

	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestPostHandler_Update(t *testing.T) {
	stub := &stubPostService{
		updateFn: func(ctx context.Context, principal ports.Principal, id int64, input ports.PostInput) (*ports.PostView, error) {
			if principal.Username != "alice" || id != 1 {
				t.Fatalf("unexpected call: %+v id=%d", principal, id)
			}
			v := sampleView()
			v.Title = input.Title
			v.Content = input.Content
			return v, nil
		},
	}
	h := NewPostHandler(stub)

	c, rec := newPostContext(t, http.MethodPut, "/api/posts/1",
		`{"title":"Fresh title","content":"updated"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asPrincipal(c, "alice", domain.RoleUser)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp postResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Title != "Fresh title" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestPostHandler_Update_Forbidden(t *testing.T) {
	stub := &stubPostService{
		updateFn: func(ctx context.Context, principal ports.Principal, id int64, input ports.PostInput) (*ports.PostView, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodPut, "/api/posts/1",
		`{"title":"Fresh title","content":"updated"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	asPrincipal(c, "mallory", domain.RoleUser)

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, principal ports.Principal, id int64) error {
			if principal.Username != "root" || !principal.IsAdmin() || id != 1 {
				t.Fatalf("unexpected call: %+v id=%d", principal, id)
			}
			return nil
		},
	}
	h := NewPostHandler(stub)

	c, rec := newPostContext(t, http.MethodDelete, "/api/posts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asPrincipal(c, "root", domain.RoleAdmin)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", rec.Body.String())
	}
}

func TestPostHandler_Delete_NotFound(t *testing.T) {
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, principal ports.Principal, id int64) error {
			return domain.ErrPostNotFound
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodDelete, "/api/posts/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	asPrincipal(c, "alice", domain.RoleUser)

	if err := h.Delete(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound to propagate, got %v", err)
	}
}

func TestPostHandler_Delete_Forbidden(t *testing.T) {
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, principal ports.Principal, id int64) error {
			return domain.ErrForbidden
		},
	}
	h := NewPostHandler(stub)

	c, _ := newPostContext(t, http.MethodDelete, "/api/posts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asPrincipal(c, "mallory", domain.RoleUser)

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}
