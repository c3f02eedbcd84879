// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"simplepost/internal/cache"
	"simplepost/internal/database"
	"simplepost/internal/middleware"
	"simplepost/internal/models"
	"simplepost/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postsTable = "posts"

// PostRepository defines the interface for post data operations.
// Lookups of a missing id return (nil, nil).
type PostRepository interface {
	Create(ctx context.Context, in models.PostCreate) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, skip, limit int) ([]*models.Post, error)
	Update(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id uint) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db     *gorm.DB
	cache  *cache.PostCache
	logger *observability.RepoLogger
}

// NewPostRepository creates a new post repository. postCache may be nil.
func NewPostRepository(db *gorm.DB, postCache *cache.PostCache) PostRepository {
	return &postRepository{
		db:     db,
		cache:  postCache,
		logger: observability.NewRepoLogger(postsTable, middleware.Logger),
	}
}

// begin opens a span and latency timer for op; finish records failures.
func (r *postRepository) begin(ctx context.Context, op string) (context.Context, func(err error) error) {
	ctx, endSpan := observability.StartRepositorySpan(ctx, op, postsTable, r.db.Dialector.Name())
	stop := observability.TrackQuery(op, postsTable)
	return ctx, func(err error) error {
		stop()
		err = wrapStorage(op, err)
		if err != nil {
			observability.DatabaseErrors.WithLabelValues(op, postsTable).Inc()
			r.logger.LogError(ctx, err, op)
		}
		endSpan(err)
		return err
	}
}

func (r *postRepository) Create(ctx context.Context, in models.PostCreate) (*models.Post, error) {
	ctx, finish := r.begin(ctx, "create")

	post := models.Post{Title: in.Title, Content: in.Content}
	if err := finish(database.Session(ctx, r.db).Create(&post).Error); err != nil {
		return nil, err
	}

	r.logger.Log(ctx, "create", map[string]any{"id": post.ID})
	return &post, nil
}

// GetByID reads through the cache. The fill is dropped when an update or
// delete for id completed after the version was read.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if cached := r.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}
	version, fillable := r.cache.Version(ctx, id)

	ctx, finish := r.begin(ctx, "get")

	var post models.Post
	err := database.Session(ctx, r.db).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = finish(nil)
		return nil, nil
	}
	if err := finish(err); err != nil {
		return nil, err
	}

	if fillable {
		r.cache.Fill(ctx, &post, version)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, skip, limit int) ([]*models.Post, error) {
	ctx, finish := r.begin(ctx, "list")

	posts := make([]*models.Post, 0)
	err := database.Session(ctx, r.db).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error
	if err := finish(err); err != nil {
		return nil, err
	}

	r.logger.Log(ctx, "list", map[string]any{"skip": skip, "limit": limit, "count": len(posts)})
	return posts, nil
}

// Update sets the present fields and refreshes updated_at in one statement.
func (r *postRepository) Update(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error) {
	ctx, finish := r.begin(ctx, "update")

	cols := in.Columns()
	cols["updated_at"] = gorm.Expr("CURRENT_TIMESTAMP")

	var post models.Post
	result := database.Session(ctx, r.db).
		Model(&post).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(cols)
	// A failed statement may still have been applied.
	r.cache.Invalidate(context.WithoutCancel(ctx), id)
	if err := finish(result.Error); err != nil {
		return nil, err
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	r.logger.Log(ctx, "update", map[string]any{"id": id})
	return &post, nil
}

// Delete removes the row and returns it as it was at deletion.
func (r *postRepository) Delete(ctx context.Context, id uint) (*models.Post, error) {
	ctx, finish := r.begin(ctx, "delete")

	var post models.Post
	result := database.Session(ctx, r.db).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&post)
	// A failed statement may still have been applied.
	r.cache.Invalidate(context.WithoutCancel(ctx), id)
	if err := finish(result.Error); err != nil {
		return nil, err
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	r.logger.Log(ctx, "delete", map[string]any{"id": id})
	return &post, nil
}
