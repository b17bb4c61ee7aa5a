package repository

import (
	"context"

	"artshare/internal/http-api/models"

	"gorm.io/gorm"
)

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *models.Artwork) error
	GetByID(ctx context.Context, id uint) (*models.Artwork, error)
	ListApproved(ctx context.Context, limit, offset int) ([]models.Artwork, int64, error)
	SampleApproved(ctx context.Context, limit int) ([]models.Artwork, error)
	ListPending(ctx context.Context) ([]models.Artwork, error)
	ListByOwner(ctx context.Context, ownerID uint, includePending bool) ([]models.Artwork, error)
	Approve(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type artworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

// Create inserts a new artwork row; the owner association is never upserted.
func (r *artworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(artwork).Error)
}

// GetByID retrieves an artwork with its owner
func (r *artworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).Preload("Owner").First(&artwork, id).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

// ListApproved returns one page of approved artworks, newest first, and the total.
func (r *artworkRepository) ListApproved(ctx context.Context, limit, offset int) ([]models.Artwork, int64, error) {
	var artworks []models.Artwork
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Artwork{}).Where("pending = ?", false).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("pending = ?", false).
		Order("submitted_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&artworks).Error
	if err != nil {
		return nil, 0, err
	}
	return artworks, total, nil
}

// SampleApproved picks up to limit approved artworks at random.
func (r *artworkRepository) SampleApproved(ctx context.Context, limit int) ([]models.Artwork, error) {
	var artworks []models.Artwork
	// RANDOM() exists in both PostgreSQL and SQLite
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("pending = ?", false).
		Order("RANDOM()").
		Limit(limit).
		Find(&artworks).Error
	return artworks, err
}

// ListPending returns the moderation queue, oldest submission first.
func (r *artworkRepository) ListPending(ctx context.Context) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("pending = ?", true).
		Order("submitted_at ASC").
		Order("id ASC").
		Find(&artworks).Error
	return artworks, err
}

func (r *artworkRepository) ListByOwner(ctx context.Context, ownerID uint, includePending bool) ([]models.Artwork, error) {
	var artworks []models.Artwork
	query := r.db.WithContext(ctx).Preload("Owner").Where("account_id = ?", ownerID)
	if !includePending {
		query = query.Where("pending = ?", false)
	}
	err := query.Order("submitted_at DESC").Order("id DESC").Find(&artworks).Error
	return artworks, err
}

// Approve clears the pending flag. Approving an approved artwork is a no-op;
// a missing artwork yields gorm.ErrRecordNotFound.
func (r *artworkRepository) Approve(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Artwork{}).Where("id = ?", id).Update("pending", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// some drivers report 0 affected rows when the value is unchanged
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Artwork{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *artworkRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Artwork{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
