package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resource-hub-backend/internal/actorctx"
	"resource-hub-backend/internal/db"
	"resource-hub-backend/internal/model"
)

// newTestDB opens a per-test in-memory SQLite database with the real
// schema, expression indexes included, so the constraint behavior the
// store relies on is exercised for real.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})
	return gdb
}

func seedActor(t *testing.T, gdb *gorm.DB, username string, role model.Role) *model.Actor {
	t.Helper()
	actor := model.Actor{Username: username, Role: role}
	require.NoError(t, gdb.Create(&actor).Error)
	return &actor
}

func ctxAs(actor *model.Actor) context.Context {
	return actorctx.With(context.Background(), actor)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
