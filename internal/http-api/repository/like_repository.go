package repository

import (
	"context"

	"artshare/internal/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, accountID, artworkID uint) (bool, error)
	CountByArtwork(ctx context.Context, artworkID uint) (int64, error)
	CountByArtworks(ctx context.Context, artworkIDs []uint) (map[uint]int64, error)
	LikedArtworkIDs(ctx context.Context, accountID uint, artworkIDs []uint) (map[uint]bool, error)
	DeleteByArtwork(ctx context.Context, artworkID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like; a second like for the same pair yields ErrDuplicateKey.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	return translate(r.db.WithContext(ctx).Omit("Account").Create(like).Error)
}

// Delete removes the pair's like and reports whether one existed.
func (r *likeRepository) Delete(ctx context.Context, accountID, artworkID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND artwork_id = ?", accountID, artworkID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) CountByArtwork(ctx context.Context, artworkID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("artwork_id = ?", artworkID).Count(&count).Error
	return count, err
}

// CountByArtworks counts likes for many artworks in one grouped query.
// Artworks without likes are absent from the map.
func (r *likeRepository) CountByArtworks(ctx context.Context, artworkIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(artworkIDs))
	if len(artworkIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ArtworkID uint
		Total     int64
	}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("artwork_id, COUNT(*) AS total").
		Where("artwork_id IN ?", artworkIDs).
		Group("artwork_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ArtworkID] = row.Total
	}
	return counts, nil
}

// LikedArtworkIDs returns the subset of artworkIDs the account has liked.
func (r *likeRepository) LikedArtworkIDs(ctx context.Context, accountID uint, artworkIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(artworkIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("account_id = ? AND artwork_id IN ?", accountID, artworkIDs).
		Pluck("artwork_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *likeRepository) DeleteByArtwork(ctx context.Context, artworkID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("artwork_id = ?", artworkID).Delete(&models.Like{})
	return result.RowsAffected, result.Error
}
