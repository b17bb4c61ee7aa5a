package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one *gorm.DB handle, so a set of
// writes can be scoped to a single transaction.
type Store struct {
	db *gorm.DB

	Accounts AccountRepository
	Artworks ArtworkRepository
	Comments CommentRepository
	Likes    LikeRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Accounts: NewAccountRepository(db),
		Artworks: NewArtworkRepository(db),
		Comments: NewCommentRepository(db),
		Likes:    NewLikeRepository(db),
	}
}

// WithinTransaction runs fn with repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
