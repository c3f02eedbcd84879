// Package service holds the request-level rules that sit between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"simplepost/internal/models"
	"simplepost/internal/repository"
	"simplepost/internal/validation"
)

// Pagination defaults for ListPosts.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
)

type PostService struct {
	postRepo repository.PostRepository
	locale   string
}

// NewPostService returns a service whose not-found errors use locale.
func NewPostService(postRepo repository.PostRepository, locale string) *PostService {
	return &PostService{
		postRepo: postRepo,
		locale:   locale,
	}
}

func (s *PostService) notFound() error {
	return models.NewNotFoundError(s.locale)
}

func (s *PostService) CreatePost(ctx context.Context, in models.PostCreate) (*models.Post, error) {
	if err := validation.PostCreate(in); err != nil {
		return nil, err
	}
	return s.postRepo.Create(ctx, in)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, s.notFound()
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, s.notFound()
	}
	return post, nil
}

// ListPosts returns posts in id order. There is no upper bound on limit.
func (s *PostService) ListPosts(ctx context.Context, skip, limit int) ([]*models.Post, error) {
	var fields []models.FieldError
	if skip < 0 {
		fields = append(fields, models.FieldError{Field: "skip", Message: "must be a non-negative integer"})
	}
	if limit < 0 {
		fields = append(fields, models.FieldError{Field: "limit", Message: "must be a non-negative integer"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid pagination parameters", fields...)
	}
	return s.postRepo.List(ctx, skip, limit)
}

// UpdatePost applies only the fields present in in. An empty update still
// refreshes updated_at.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error) {
	if err := validation.PostUpdate(in); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, s.notFound()
	}
	post, err := s.postRepo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, s.notFound()
	}
	return post, nil
}

// DeletePost removes the post and returns it as it was before deletion.
func (s *PostService) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, s.notFound()
	}
	post, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, s.notFound()
	}
	return post, nil
}
