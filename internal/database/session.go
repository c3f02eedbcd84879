package database

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type sessionKey struct{}

// SessionMiddleware gives every request its own GORM session bound to a
// request-scoped context. The context is cancelled when the handler returns,
// so no statement (and no pooled connection) outlives the request.
func SessionMiddleware(db *gorm.DB, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			ctx    context.Context
			cancel context.CancelFunc
		)
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(c.UserContext(), timeout)
		} else {
			ctx, cancel = context.WithCancel(c.UserContext())
		}
		defer cancel()

		sess := db.Session(&gorm.Session{Context: ctx, NewDB: true})
		c.SetUserContext(context.WithValue(ctx, sessionKey{}, sess))
		return c.Next()
	}
}

// Session returns the request-scoped session stored in ctx. Outside of a
// request (CLI tools, tests) it falls back to db bound to ctx.
func Session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if sess, ok := ctx.Value(sessionKey{}).(*gorm.DB); ok {
		return sess.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
