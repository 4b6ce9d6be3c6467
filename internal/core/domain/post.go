package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MinTitleLen is the minimum number of characters a post title must have.
const MinTitleLen = 5

var ErrPostNotFound = errors.New("post not found")
var ErrInvalidPost = errors.New("invalid post")
var ErrForbidden = errors.New("access forbidden")

// Post is the core aggregate. The ID is assigned by the store on creation and
// CreatedAt is set exactly once; updates rewrite title and content only.
type Post struct {
	ID             int64     `json:"id" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	Content        string    `json:"content" bson:"content"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	AuthorID       string    `json:"author_id,omitempty" bson:"author_id"`
	AuthorUsername string    `json:"author_username" bson:"author_username"`
}

// NewPost validates and builds a post for the given author. The ID stays zero
// until the store assigns one.
func NewPost(title, content string, author *User, now time.Time) (*Post, error) {
	if err := ValidatePostFields(title, content); err != nil {
		return nil, err
	}
	if author == nil || author.Username == "" {
		return nil, fmt.Errorf("%w: author is required", ErrInvalidPost)
	}

	return &Post{
		Title:          title,
		Content:        content,
		CreatedAt:      now,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}, nil
}

// ValidatePostFields enforces the title and content constraints shared by
// create and update.
func ValidatePostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPost)
	}
	if utf8.RuneCountInString(title) < MinTitleLen {
		return fmt.Errorf("%w: title must be at least %d characters", ErrInvalidPost, MinTitleLen)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidPost)
	}
	return nil
}

// Rewrite replaces the mutable fields of the post. CreatedAt and the author
// reference are never touched.
func (p *Post) Rewrite(title, content string) error {
	if err := ValidatePostFields(title, content); err != nil {
		return err
	}
	p.Title = title
	p.Content = content
	return nil
}

// IsAuthor reports whether username owns the post.
func (p *Post) IsAuthor(username string) bool {
	return p.AuthorUsername == username
}
