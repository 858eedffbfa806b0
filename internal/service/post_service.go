package service

import (
	"context"
	"strings"

	dom "Noteboard/internal/domain"
	"Noteboard/internal/repo"
)

type PostPatch struct {
	Title *string
	Body  *string
}

type PostService struct {
	owned *Owned[*dom.Post]
}

func NewPostService(store repo.Store[*dom.Post]) *PostService {
	return &PostService{owned: NewOwned(store, "Post")}
}

func (s *PostService) CreatePost(ctx context.Context, callerID, title, body string) (*dom.Post, error) {
	return s.owned.Create(ctx, &dom.Post{
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}, callerID)
}

func (s *PostService) GetPostByID(ctx context.Context, id string) (*dom.Post, error) {
	return s.owned.GetByID(ctx, id)
}

func (s *PostService) ListUserPosts(ctx context.Context, ownerID string, opts repo.PageOptions) (*repo.Page[*dom.Post], error) {
	return s.owned.List(ctx, repo.Filter{"created_by": ownerID}, opts)
}

func (s *PostService) UpdatePost(ctx context.Context, id, callerID string, p PostPatch) (*dom.Post, error) {
	return s.owned.Update(ctx, id, callerID, func(post *dom.Post) {
		if p.Title != nil {
			post.Title = strings.TrimSpace(*p.Title)
		}
		if p.Body != nil {
			post.Body = strings.TrimSpace(*p.Body)
		}
	})
}

func (s *PostService) DeletePost(ctx context.Context, id, callerID string) (*dom.Post, error) {
	return s.owned.Delete(ctx, id, callerID)
}
