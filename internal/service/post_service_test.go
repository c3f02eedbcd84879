package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"simplepost/internal/models"
	"simplepost/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, models.PostCreate) (*models.Post, error)
	getByIDFn func(context.Context, uint) (*models.Post, error)
	listFn    func(context.Context, int, int) ([]*models.Post, error)
	updateFn  func(context.Context, uint, models.PostUpdate) (*models.Post, error)
	deleteFn  func(context.Context, uint) (*models.Post, error)
	calls     int
}

func (s *postRepoStub) Create(ctx context.Context, in models.PostCreate) (*models.Post, error) {
	s.calls++
	return s.createFn(ctx, in)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	s.calls++
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, skip, limit int) ([]*models.Post, error) {
	s.calls++
	return s.listFn(ctx, skip, limit)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error) {
	s.calls++
	return s.updateFn(ctx, id, in)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (*models.Post, error) {
	s.calls++
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, in models.PostCreate) (*models.Post, error) {
			return &models.Post{ID: 1, Title: in.Title, Content: in.Content}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:    func(_ context.Context, _, _ int) ([]*models.Post, error) { return []*models.Post{}, nil },
		updateFn:  func(_ context.Context, id uint, _ models.PostUpdate) (*models.Post, error) { return &models.Post{ID: id}, nil },
		deleteFn:  func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
	}
}

func absentPostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil }
	repo.updateFn = func(_ context.Context, _ uint, _ models.PostUpdate) (*models.Post, error) { return nil, nil }
	repo.deleteFn = func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil }
	return repo
}

func requireAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestPostService_CreatePost(t *testing.T) {
	tests := []struct {
		name      string
		in        models.PostCreate
		wantCode  string
		wantCalls int
	}{
		{"Valid", models.PostCreate{Title: "Hello", Content: "0123456789"}, "", 1},
		{"Content too short", models.PostCreate{Title: "Hello", Content: "012345678"}, models.CodeValidation, 0},
		{"Empty title", models.PostCreate{Title: "", Content: "0123456789"}, models.CodeValidation, 0},
		{"Title too long", models.PostCreate{Title: strings.Repeat("a", 257), Content: "0123456789"}, models.CodeValidation, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := noopPostRepo()
			svc := NewPostService(repo, "en")

			post, err := svc.CreatePost(context.Background(), tt.in)
			if tt.wantCode != "" {
				requireAppError(t, err, tt.wantCode)
				assert.Nil(t, post)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.in.Title, post.Title)
			}
			assert.Equal(t, tt.wantCalls, repo.calls)
		})
	}
}

func TestPostService_NotFoundSymmetry(t *testing.T) {
	svc := NewPostService(absentPostRepo(), "en")
	ctx := context.Background()
	title := "x"

	_, err := svc.GetPost(ctx, 7)
	getErr := requireAppError(t, err, models.CodeNotFound)

	_, err = svc.UpdatePost(ctx, 7, models.PostUpdate{Title: &title})
	updateErr := requireAppError(t, err, models.CodeNotFound)

	_, err = svc.DeletePost(ctx, 7)
	deleteErr := requireAppError(t, err, models.CodeNotFound)

	assert.Equal(t, "Post not found", getErr.Message)
	assert.Equal(t, getErr.Message, updateErr.Message)
	assert.Equal(t, getErr.Message, deleteErr.Message)
}

func TestPostService_LocalizedNotFound(t *testing.T) {
	svc := NewPostService(absentPostRepo(), "ru")

	_, err := svc.GetPost(context.Background(), 1)
	appErr := requireAppError(t, err, models.CodeNotFound)
	assert.Equal(t, "Пост не найден", appErr.Message)
}

func TestPostService_ZeroIDSkipsRepository(t *testing.T) {
	repo := noopPostRepo()
	svc := NewPostService(repo, "en")
	ctx := context.Background()

	_, err := svc.GetPost(ctx, 0)
	requireAppError(t, err, models.CodeNotFound)
	_, err = svc.UpdatePost(ctx, 0, models.PostUpdate{})
	requireAppError(t, err, models.CodeNotFound)
	_, err = svc.DeletePost(ctx, 0)
	requireAppError(t, err, models.CodeNotFound)

	assert.Zero(t, repo.calls)
}

func TestPostService_UpdatePost_ValidatesPresentFields(t *testing.T) {
	repo := noopPostRepo()
	svc := NewPostService(repo, "en")
	short := "short"

	_, err := svc.UpdatePost(context.Background(), 1, models.PostUpdate{Content: &short})
	appErr := requireAppError(t, err, models.CodeValidation)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "content", appErr.Fields[0].Field)
	assert.Zero(t, repo.calls)

	post, err := svc.UpdatePost(context.Background(), 1, models.PostUpdate{})
	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
}

func TestPostService_ListPosts(t *testing.T) {
	repo := noopPostRepo()
	var gotSkip, gotLimit int
	repo.listFn = func(_ context.Context, skip, limit int) ([]*models.Post, error) {
		gotSkip, gotLimit = skip, limit
		return []*models.Post{{ID: 3}}, nil
	}
	svc := NewPostService(repo, "en")

	posts, err := svc.ListPosts(context.Background(), DefaultSkip, DefaultLimit)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 0, gotSkip)
	assert.Equal(t, 100, gotLimit)

	_, err = svc.ListPosts(context.Background(), -1, -5)
	appErr := requireAppError(t, err, models.CodeValidation)
	assert.Len(t, appErr.Fields, 2)
	assert.Equal(t, 1, repo.calls)
}

func TestPostService_StorageErrorPassesThrough(t *testing.T) {
	repo := noopPostRepo()
	storageErr := &repository.StorageError{Op: "get", Err: errors.New("connection refused")}
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return nil, storageErr }
	svc := NewPostService(repo, "en")

	_, err := svc.GetPost(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrStorage)
}
