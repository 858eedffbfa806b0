package dto

import "Noteboard/internal/repo"

type CreateCommentRequest struct {
	Message string `json:"message" binding:"required,notblank,max=2000"`
	PostID  string `json:"postId" binding:"required,uuid"`
}

type UpdateCommentRequest struct {
	Message *string `json:"message" binding:"omitempty,notblank,max=2000"`
}

// ListCommentsRequest carries page options for a post's comments. They may
// come in the body or as ?page=&limit= query parameters.
type ListCommentsRequest struct {
	Options repo.PageOptions `json:"options"`
}

type CommentURI struct {
	CommentID string `uri:"commentId" binding:"required,uuid"`
}
