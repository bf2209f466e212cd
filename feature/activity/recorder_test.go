package activity

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestStore_Record(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `storage_activity`").
		WithArgs("move", "photos", "a.png", "b.png", "ray-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	store.Record(context.Background(), Event{
		Operation: "move",
		Bucket:    "photos",
		Path:      "a.png",
		Target:    "b.png",
		RayID:     "ray-1",
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecordFailureIsDropped(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `storage_activity`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	assert.NotPanics(t, func() {
		store.Record(context.Background(), Event{Operation: "upload", Bucket: "b"})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Recent(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "operation", "bucket", "path", "target", "ray_id", "created_at"}).
		AddRow(2, "delete_file", "photos", "b.png", "", "r2", now).
		AddRow(1, "upload", "photos", "b.png", "", "r1", now)
	mock.ExpectQuery("SELECT \\* FROM `storage_activity` WHERE bucket = \\? ORDER BY id desc LIMIT").
		WillReturnRows(rows)

	entries, err := store.Recent(context.Background(), "photos", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete_file", entries[0].Operation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRecent(t *testing.T) {
	db, mock := setupMockDB(t)
	app := fiber.New()
	NewHandler(NewStore(db, zap.NewNop()), zap.NewNop()).RegisterRoutes(app)

	t.Run("OK", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `storage_activity`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "operation", "bucket"}).AddRow(1, "upload", "b"))

		resp, err := app.Test(httptest.NewRequest("GET", "/activity?limit=5", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body []Entry
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "upload", body[0].Operation)
	})

	t.Run("Query Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `storage_activity`").WillReturnError(assert.AnError)

		resp, err := app.Test(httptest.NewRequest("GET", "/activity", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestFeature(t *testing.T) {
	f := NewFeature(nil, zap.NewNop())
	assert.False(t, f.IsEnabled())
	assert.IsType(t, Nop{}, f.Recorder())

	db, _ := setupMockDB(t)
	f = NewFeature(db, zap.NewNop())
	assert.True(t, f.IsEnabled())
	assert.IsType(t, &Store{}, f.Recorder())
}
