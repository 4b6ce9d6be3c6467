package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// postRequest is the body for both create and update.
type postRequest struct {
	Title   string `json:"title"   validate:"required,min=5"`
	Content string `json:"content" validate:"required"`
}

// postResponse is the canonical post shape returned by every post endpoint.
// It is intentionally separate from the service types so the JSON contract is
// not coupled to internal changes.
type postResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username"`
}

type listPostsResponse struct {
	Data []postResponse `json:"data"`
}
