package dto

type CreatePostRequest struct {
	Title string `json:"title" binding:"required,notblank,max=200"`
	Body  string `json:"body" binding:"required,notblank,max=10000"`
}

type UpdatePostRequest struct {
	Title *string `json:"title" binding:"omitempty,notblank,max=200"`
	Body  *string `json:"body" binding:"omitempty,notblank,max=10000"`
}

type PostURI struct {
	PostID string `uri:"postId" binding:"required,uuid"`
}
