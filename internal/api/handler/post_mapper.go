package handler

import (
	"github.com/portfolio/blog-api/internal/core/ports"
)

func toPostInput(req postRequest) ports.PostInput {
	return ports.PostInput{
		Title:   req.Title,
		Content: req.Content,
	}
}

func toPostResponse(v *ports.PostView) postResponse {
	return postResponse{
		ID:             v.ID,
		Title:          v.Title,
		Content:        v.Content,
		CreatedAt:      v.CreatedAt.UTC(),
		AuthorUsername: v.AuthorUsername,
	}
}

func toListResponse(views []ports.PostView) listPostsResponse {
	items := make([]postResponse, len(views))
	for i := range views {
		items[i] = toPostResponse(&views[i])
	}
	return listPostsResponse{Data: items}
}
