package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artshare/internal/http-api/models"

	"gorm.io/gorm"
)

// Record is the database row behind DBStore.
type Record struct {
	ID        string      `gorm:"primaryKey;size:36"`
	AccountID uint        `gorm:"not null;index"`
	Username  string      `gorm:"size:50;not null"`
	Role      models.Role `gorm:"type:varchar(20);not null"`
	ExpiresAt time.Time   `gorm:"not null;index"`
	CreatedAt time.Time
}

func (Record) TableName() string {
	return "sessions"
}

// DBStore keeps sessions in the application database.
type DBStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db, now: time.Now}
}

func (d *DBStore) Create(ctx context.Context, s *Session) error {
	record := &Record{
		ID:        s.ID,
		AccountID: s.AccountID,
		Username:  s.Username,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt,
	}
	if err := d.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (d *DBStore) Get(ctx context.Context, id string) (*Session, error) {
	var record Record
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	s := &Session{
		ID:        record.ID,
		AccountID: record.AccountID,
		Username:  record.Username,
		Role:      record.Role,
		ExpiresAt: record.ExpiresAt,
	}
	if s.Expired(d.now()) {
		// lazily drop the stale row
		d.db.WithContext(ctx).Delete(&Record{}, "id = ?", id)
		return nil, ErrNotFound
	}
	return s, nil
}

func (d *DBStore) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error
}

// PurgeExpired removes every expired row and reports how many were deleted.
func (d *DBStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := d.db.WithContext(ctx).Where("expires_at <= ?", d.now()).Delete(&Record{})
	return result.RowsAffected, result.Error
}
