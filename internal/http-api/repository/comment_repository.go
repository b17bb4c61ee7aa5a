package repository

import (
	"context"

	"artshare/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByArtwork(ctx context.Context, artworkID uint) ([]models.Comment, error)
	DeleteByArtwork(ctx context.Context, artworkID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Create(comment).Error)
}

// ListByArtwork returns every comment on an artwork, newest first.
func (r *commentRepository) ListByArtwork(ctx context.Context, artworkID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) DeleteByArtwork(ctx context.Context, artworkID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("artwork_id = ?", artworkID).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}
