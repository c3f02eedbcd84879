package database

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"simplepost/internal/config"
	modelspkg "simplepost/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestConfigurePool(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantMaxOpen int
	}{
		{
			name: "Postgres dev uses configured size",
			cfg: &config.Config{
				Mode:                     config.ModeDev,
				DBDriver:                 config.DriverPostgres,
				DBMaxOpenConns:           10,
				DBMaxIdleConns:           5,
				DBConnMaxLifetimeMinutes: 15,
			},
			wantMaxOpen: 10,
		},
		{
			name: "Test mode keeps configured size",
			cfg: &config.Config{
				Mode:           config.ModeTest,
				DBDriver:       config.DriverPostgres,
				DBMaxOpenConns: 4,
				DBMaxIdleConns: 5,
			},
			wantMaxOpen: 4,
		},
		{
			name: "SQLite is pinned to one connection",
			cfg: &config.Config{
				Mode:           config.ModeDev,
				DBDriver:       config.DriverSQLite,
				DBMaxOpenConns: 25,
			},
			wantMaxOpen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openMemoryDB(t)
			require.NoError(t, configurePool(db, tt.cfg))

			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMaxOpen, sqlDB.Stats().MaxOpenConnections)
		})
	}
}

func TestConnectWithOptions_SQLite(t *testing.T) {
	cfg := &config.Config{
		Mode:         config.ModeTest,
		DBDriver:     config.DriverSQLite,
		TestDBURL:    "file::memory:",
		DBSchemaMode: SchemaModeSQL,
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	assert.NoError(t, Ping(context.Background(), db))
	assert.True(t, db.Migrator().HasTable(&modelspkg.Post{}))
}

func TestOpenDialector_UnknownDriver(t *testing.T) {
	_, err := openDialector(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestSessionMiddleware_CancelsWhenRequestEnds(t *testing.T) {
	db := openMemoryDB(t)

	var captured context.Context
	var hasDeadline bool
	app := fiber.New()
	app.Use(SessionMiddleware(db, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error {
		captured = c.UserContext()
		_, hasDeadline = captured.Deadline()
		sess := Session(captured, db)
		assert.Equal(t, captured, sess.Statement.Context)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.NotNil(t, captured)
	assert.True(t, hasDeadline)
	assert.ErrorIs(t, captured.Err(), context.Canceled)
}

func TestSessionMiddleware_NoTimeout(t *testing.T) {
	db := openMemoryDB(t)

	var hasDeadline bool
	app := fiber.New()
	app.Use(SessionMiddleware(db, 0))
	app.Get("/", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.False(t, hasDeadline)
}

func TestSession_FallsBackOutsideRequest(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.WithValue(context.Background(), struct{ k string }{"k"}, "v")

	sess := Session(ctx, db)
	assert.Equal(t, ctx, sess.Statement.Context)
}
