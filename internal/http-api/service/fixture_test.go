package service

import (
	"bytes"
	"testing"

	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"
	"artshare/internal/storage"
	"artshare/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	store  *repository.Store
	images *storage.LocalStore

	moderation ModerationService
	engagement EngagementService
	gallery    GalleryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	store := repository.NewStore(db)
	images, err := storage.NewLocalStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	return &fixture{
		db:         db,
		store:      store,
		images:     images,
		moderation: NewModerationService(store, images, testutil.Logger()),
		engagement: NewEngagementService(store),
		gallery:    NewGalleryService(store, DefaultPageSize, 3),
	}
}

func principalOf(a *models.Account) *Principal {
	return &Principal{AccountID: a.ID, Username: a.Username, Role: a.Role}
}

func pngUpload() *bytes.Reader {
	data := make([]byte, 256)
	copy(data, "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	return bytes.NewReader(data)
}

// failCreates makes the next n inserts into table fail with err.
func failCreates(t *testing.T, db *gorm.DB, table string, n int, err error) {
	t.Helper()
	remaining := n
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table && remaining > 0 {
			remaining--
			tx.AddError(err)
		}
	}))
}
