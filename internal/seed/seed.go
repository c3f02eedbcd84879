package seed

import (
	"context"
	"fmt"
	"log/slog"

	"simplepost/internal/cache"
	"simplepost/internal/middleware"
	"simplepost/internal/models"
	"simplepost/internal/repository"
	"simplepost/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder populates the posts table through the regular repository.
type Seeder struct {
	db      *gorm.DB
	cache   *cache.PostCache
	posts   repository.PostRepository
	factory *Factory
}

// NewSeeder creates a Seeder bound to db. postCache may be nil. seed fixes
// the fake data; zero means random.
func NewSeeder(db *gorm.DB, postCache *cache.PostCache, seed int64) *Seeder {
	return &Seeder{
		db:      db,
		cache:   postCache,
		posts:   repository.NewPostRepository(db, postCache),
		factory: NewFactory(seed),
	}
}

// ClearAll removes every post and invalidates the cached copy of each.
func (s *Seeder) ClearAll(ctx context.Context) error {
	var removed []models.Post
	res := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Delete(&removed)
	if res.Error != nil {
		return fmt.Errorf("clear posts: %w", res.Error)
	}
	for _, p := range removed {
		s.cache.Invalidate(ctx, p.ID)
	}
	middleware.Logger.Info("Cleared posts", slog.Int64("rows", res.RowsAffected))
	return nil
}

// SeedPosts creates n posts and returns them in creation order.
func (s *Seeder) SeedPosts(ctx context.Context, n int) ([]*models.Post, error) {
	created := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		in := s.factory.BuildPost()
		if err := validation.PostCreate(in); err != nil {
			return created, fmt.Errorf("generated post %d is invalid: %w", i, err)
		}
		post, err := s.posts.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("create post %d: %w", i, err)
		}
		created = append(created, post)
	}
	middleware.Logger.Info("Seeded posts", slog.Int("count", len(created)))
	return created, nil
}
