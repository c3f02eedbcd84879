package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredMigrations(t *testing.T) {
	all := GetMigrations()
	require.GreaterOrEqual(t, len(all), 2)

	for i, m := range all {
		assert.NotEmpty(t, m.UpScript, m.String())
		assert.NotEmpty(t, m.DownScript, m.String())
		if i > 0 {
			assert.Greater(t, m.Version, all[i-1].Version)
		}
	}

	assert.Equal(t, "000001_create_posts", all[0].String())
	assert.Contains(t, all[0].UpScript, "CREATE TABLE")
}

func TestLoadMigrations(t *testing.T) {
	file := func(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

	tests := []struct {
		name    string
		fsys    fstest.MapFS
		want    []string
		wantErr string
	}{
		{
			name: "Ordered by version",
			fsys: fstest.MapFS{
				"migrations/000002_b.up.sql":   file("B"),
				"migrations/000002_b.down.sql": file("-B"),
				"migrations/000001_a.up.sql":   file("A"),
				"migrations/000001_a.down.sql": file("-A"),
				"migrations/README.md":         file("ignored"),
			},
			want: []string{"000001_a", "000002_b"},
		},
		{
			name: "Missing down script",
			fsys: fstest.MapFS{
				"migrations/000001_a.up.sql": file("A"),
			},
			wantErr: "no down script",
		},
		{
			name: "Bad version",
			fsys: fstest.MapFS{
				"migrations/x_a.up.sql":   file("A"),
				"migrations/x_a.down.sql": file("-A"),
			},
			wantErr: "bad version",
		},
		{
			name: "Duplicate version",
			fsys: fstest.MapFS{
				"migrations/000001_a.up.sql":   file("A"),
				"migrations/000001_a.down.sql": file("-A"),
				"migrations/1_b.up.sql":        file("B"),
				"migrations/1_b.down.sql":      file("-B"),
			},
			wantErr: "version 1 used by",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadMigrations(tt.fsys)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, m := range got {
				names = append(names, m.String())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}

	assert.NoError(t, validateAppliedVersions(nil, registered))
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))

	err := validateAppliedVersions([]int{1, 7, 5}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000005, 000007")
}

func TestApplyAndRevertMigration_SQLite(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	// Never migrated: no log table yet.
	applied, err := appliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	require.NoError(t, db.AutoMigrate(&MigrationLog{}))
	things := Migration{Version: 1, Name: "create_things", UpScript: "CREATE TABLE things (id INTEGER PRIMARY KEY)", DownScript: "DROP TABLE things"}
	require.NoError(t, applyMigration(ctx, db, things))
	assert.True(t, db.Migrator().HasTable("things"))

	applied, err = appliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)

	// A failing script leaves no log entry behind.
	broken := Migration{Version: 2, Name: "broken", UpScript: "CREATE TABLE"}
	assert.Error(t, applyMigration(ctx, db, broken))
	applied, err = appliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)

	require.NoError(t, revertMigration(ctx, db, things))
	assert.False(t, db.Migrator().HasTable("things"))
	applied, err = appliedVersions(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestRollbackMigration_NotApplied(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, db.AutoMigrate(&MigrationLog{}))

	err := RollbackMigration(context.Background(), db, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has not been applied")

	err = RollbackMigration(context.Background(), db, 999999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
