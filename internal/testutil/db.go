// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"artshare/internal/http-api/models"
	"artshare/internal/middleware/auth"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t *testing.T, extra ...any) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(append(models.All(), extra...)...))
	return db
}

// Logger discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateAccount inserts an account whose password is "password123".
func CreateAccount(t *testing.T, db *gorm.DB, username string, role models.Role) *models.Account {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	account := &models.Account{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hash,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		Surname:   "Tester",
		Role:      role,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

// CreateArtwork inserts an artwork row directly, bypassing the upload store.
func CreateArtwork(t *testing.T, db *gorm.DB, owner *models.Account, title string, pending bool) *models.Artwork {
	t.Helper()

	artwork := &models.Artwork{
		AccountID: owner.ID,
		Title:     title,
		ImagePath: "uploads/" + strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".png",
		Pending:   true,
	}
	require.NoError(t, db.Omit("Owner").Create(artwork).Error)
	if !pending {
		// the column default is true, so false must be written explicitly
		require.NoError(t, db.Model(artwork).Update("pending", false).Error)
		artwork.Pending = false
	}
	return artwork
}
