package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"simplepost/internal/middleware"
	"simplepost/internal/models"
	"simplepost/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	PostKeyPrefix = "post:%d"
	PostTTL       = time.Minute
)

// errStaleFill aborts a fill whose version no longer matches.
var errStaleFill = errors.New("post changed since read")

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// PostVersionKey holds the write counter for a post. Writers bump it on every
// update or delete so that a fill started before the write is discarded.
func PostVersionKey(postID uint) string {
	return PostKey(postID) + ":v"
}

// PostCache stores post snapshots by id. A nil *PostCache is valid and
// caches nothing. Redis failures are logged and reported as misses.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache returns nil when client is nil.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = PostTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

// Get returns the cached post for id, or nil on a miss.
func (c *PostCache) Get(ctx context.Context, id uint) *models.Post {
	if c == nil {
		return nil
	}
	var post models.Post
	found, err := getJSON(ctx, c.client, PostKey(id), &post)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "post cache read failed", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
		found = false
	}
	if !found {
		observability.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	observability.CacheLookups.WithLabelValues("hit").Inc()
	return &post
}

// Version returns the write counter for id. It must be read before the
// database so Fill can tell whether a write happened in between. ok is false
// when Redis failed, in which case the caller must not fill.
func (c *PostCache) Version(ctx context.Context, id uint) (version int64, ok bool) {
	if c == nil {
		return 0, false
	}
	v, err := c.client.Get(ctx, PostVersionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		middleware.Logger.WarnContext(ctx, "post cache version read failed", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
		return 0, false
	}
	return v, true
}

// Fill stores post only if its write counter still equals version. The check
// and the write run under WATCH, so an Invalidate racing with Fill wins.
func (c *PostCache) Fill(ctx context.Context, post *models.Post, version int64) {
	if c == nil || post == nil {
		return
	}
	b, err := json.Marshal(post)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "post cache encode failed", slog.Uint64("id", uint64(post.ID)), slog.String("error", err.Error()))
		return
	}

	versionKey := PostVersionKey(post.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, PostKey(post.ID), b, c.ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		middleware.Logger.DebugContext(ctx, "post cache fill skipped", slog.Uint64("id", uint64(post.ID)))
	default:
		middleware.Logger.WarnContext(ctx, "post cache write failed", slog.Uint64("id", uint64(post.ID)), slog.String("error", err.Error()))
	}
}

// Invalidate bumps the write counter for id and drops its snapshot.
// Callers invalidate after the database write has completed.
func (c *PostCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, PostVersionKey(id))
		pipe.Del(ctx, PostKey(id))
		return nil
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "post cache invalidate failed", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
	}
}

// getJSON returns (true, nil) if key was found and decoded, (false, nil) if not found.
func getJSON(ctx context.Context, client *redis.Client, key string, dest any) (bool, error) {
	s, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}
