package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewPost_Valid(t *testing.T) {
	author := &User{ID: "u1", Username: "alice", Role: RoleUser}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	post, err := NewPost("Hello World", "content", author, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 0 {
		t.Errorf("id must stay zero until the store assigns one, got %d", post.ID)
	}
	if post.AuthorUsername != "alice" || post.AuthorID != "u1" {
		t.Errorf("author not captured: %+v", post)
	}
	if !post.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt: want %v, got %v", now, post.CreatedAt)
	}
}

func TestNewPost_Invalid(t *testing.T) {
	author := &User{ID: "u1", Username: "alice", Role: RoleUser}
	now := time.Now()

	cases := []struct {
		name    string
		title   string
		content string
		author  *User
	}{
		{"blank title", "", "content", author},
		{"whitespace title", "    ", "content", author},
		{"short title", "Four", "content", author},
		{"blank content", "Hello World", "", author},
		{"whitespace content", "Hello World", "  \t ", author},
		{"nil author", "Hello World", "content", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPost(tc.title, tc.content, tc.author, now); !errors.Is(err, ErrInvalidPost) {
				t.Fatalf("expected ErrInvalidPost, got %v", err)
			}
		})
	}
}

func TestNewPost_TitleLengthCountsRunes(t *testing.T) {
	author := &User{Username: "alice"}
	// five runes, more than five bytes
	if _, err := NewPost("héllo", "content", author, time.Now()); err != nil {
		t.Fatalf("five-rune title must be accepted: %v", err)
	}
}

func TestPost_Rewrite(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	post := &Post{ID: 7, Title: "Hello World", Content: "old", CreatedAt: created, AuthorUsername: "alice"}

	if err := post.Rewrite("Hello Again", "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "Hello Again" || post.Content != "new" {
		t.Errorf("rewrite not applied: %+v", post)
	}
	if !post.CreatedAt.Equal(created) {
		t.Error("rewrite must not touch CreatedAt")
	}

	if err := post.Rewrite("x", "new"); !errors.Is(err, ErrInvalidPost) {
		t.Fatalf("expected ErrInvalidPost, got %v", err)
	}
	if post.Title != "Hello Again" {
		t.Error("failed rewrite must leave the post unchanged")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Fatalf("admin: got %q, %v", r, err)
	}
	if r, err := ParseRole("user"); err != nil || r != RoleUser {
		t.Fatalf("user: got %q, %v", r, err)
	}
	for _, bad := range []string{"", "ADMIN", "root", "client"} {
		if _, err := ParseRole(bad); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("%q: expected ErrInvalidRole, got %v", bad, err)
		}
	}
}
