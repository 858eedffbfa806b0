package service

import (
	"context"
	"errors"
	"strings"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
)

// PostFinder resolves the post a comment belongs to.
type PostFinder interface {
	GetPostByID(ctx context.Context, id string) (*dom.Post, error)
}

type CommentPatch struct {
	Message *string
}

type CommentService struct {
	owned *Owned[*dom.Comment]
	posts PostFinder
}

func NewCommentService(store repo.Store[*dom.Comment], posts PostFinder) *CommentService {
	return &CommentService{owned: NewOwned(store, "Comment"), posts: posts}
}

// CreateComment attaches a comment to postID. Nothing is stored when the post does not exist.
func (s *CommentService) CreateComment(ctx context.Context, callerID, postID, message string) (*dom.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.owned.Create(ctx, &dom.Comment{
		Message: strings.TrimSpace(message),
		PostID:  postID,
	}, callerID)
}

func (s *CommentService) GetCommentByID(ctx context.Context, id string) (*dom.Comment, error) {
	return s.owned.GetByID(ctx, id)
}

// ListPostComments pages through the comments of a post, oldest first.
func (s *CommentService) ListPostComments(ctx context.Context, postID string, opts repo.PageOptions) (*repo.Page[*dom.Comment], error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.owned.List(ctx, repo.Filter{"post_id": postID}, opts)
}

func (s *CommentService) UpdateComment(ctx context.Context, id, callerID string, p CommentPatch) (*dom.Comment, error) {
	return s.owned.Update(ctx, id, callerID, func(c *dom.Comment) {
		if p.Message != nil {
			c.Message = strings.TrimSpace(*p.Message)
		}
	})
}

func (s *CommentService) DeleteComment(ctx context.Context, id, callerID string) (*dom.Comment, error) {
	return s.owned.Delete(ctx, id, callerID)
}

func (s *CommentService) requirePost(ctx context.Context, postID string) error {
	_, err := s.posts.GetPostByID(ctx, postID)
	if errors.Is(err, ErrNotFound) {
		return notFound("Post not found")
	}
	return err
}
