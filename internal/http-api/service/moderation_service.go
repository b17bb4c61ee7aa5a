package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"
	"artshare/internal/storage"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"

	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

// ImageStore is where uploaded image bytes live. storage.LocalStore implements it.
type ImageStore interface {
	Save(originalName string, r io.Reader) (*storage.Stored, error)
	Remove(ref string) error
}

type ModerationService interface {
	Submit(ctx context.Context, caller *Principal, in dto.SubmitInput) (*models.Artwork, error)
	ListPending(ctx context.Context, caller *Principal) ([]dto.ArtworkCard, error)
	Decide(ctx context.Context, caller *Principal, artworkID uint, action string) error
}

type moderationService struct {
	store  *repository.Store
	images ImageStore
	log    *slog.Logger
}

func NewModerationService(store *repository.Store, images ImageStore, log *slog.Logger) ModerationService {
	return &moderationService{store: store, images: images, log: log}
}

// Submit stores the image and records the artwork as pending.
func (s *moderationService) Submit(ctx context.Context, caller *Principal, in dto.SubmitInput) (*models.Artwork, error) {
	if err := Authorize(caller, models.RoleArtist); err != nil {
		return nil, err
	}

	title := cleanText(in.Title)
	description := cleanText(in.Description)
	switch {
	case title == "":
		return nil, invalid("title", "is required")
	case utf8.RuneCountInString(title) > maxTitleLen:
		return nil, invalid("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	case utf8.RuneCountInString(description) > maxDescriptionLen:
		return nil, invalid("description", fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	case in.Image == nil || in.FileName == "":
		return nil, invalid("image", "is required")
	}

	if _, ok := storage.Extension(in.FileName); !ok {
		return nil, fmt.Errorf("%w: allowed types are png, jpg, jpeg, gif", ErrInvalidFileType)
	}

	stored, err := s.images.Save(in.FileName, in.Image)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			return nil, fmt.Errorf("%w: file content is not an allowed image", ErrInvalidFileType)
		case errors.Is(err, storage.ErrTooLarge):
			return nil, fmt.Errorf("%w: image is too large", ErrUpload)
		default:
			s.log.Error("failed to store upload", "account_id", caller.AccountID, "original_name", in.FileName, "error", err)
			return nil, fmt.Errorf("%w: could not store image", ErrUpload)
		}
	}

	artwork := &models.Artwork{
		AccountID:   caller.AccountID,
		Title:       title,
		Description: description,
		ImagePath:   stored.Ref,
		Pending:     true,
	}
	err = s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
		return tx.Artworks.Create(ctx, artwork)
	})
	if err != nil {
		s.log.Error("artwork insert failed, removing orphaned image",
			"account_id", caller.AccountID, "image", stored.Ref, "error", err)
		if rmErr := s.images.Remove(stored.Ref); rmErr != nil {
			s.log.Warn("orphaned image left on disk", "image", stored.Ref, "error", rmErr)
		}
		return nil, fmt.Errorf("%w: could not record artwork", ErrUpload)
	}

	s.log.Info("artwork submitted",
		"artwork_id", artwork.ID,
		"account_id", caller.AccountID,
		"original_name", in.FileName,
		"stored_as", stored.Name,
		"bytes", stored.Size,
	)
	return artwork, nil
}

// ListPending returns the moderation queue, oldest first.
func (s *moderationService) ListPending(ctx context.Context, caller *Principal) ([]dto.ArtworkCard, error) {
	if err := Authorize(caller, models.RoleAdmin); err != nil {
		return nil, err
	}

	artworks, err := s.store.Artworks.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending artworks: %w", err)
	}

	cards := make([]dto.ArtworkCard, 0, len(artworks))
	for i := range artworks {
		cards = append(cards, dto.FromModelToArtworkCard(&artworks[i]))
	}
	return cards, nil
}

// Decide approves or rejects a pending artwork. Rejection deletes the row,
// its comments and likes, then the image file.
func (s *moderationService) Decide(ctx context.Context, caller *Principal, artworkID uint, action string) error {
	if err := Authorize(caller, models.RoleAdmin); err != nil {
		return err
	}

	switch action {
	case ActionApprove:
		err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
			return tx.Artworks.Approve(ctx, artworkID)
		})
		if err != nil {
			return notFoundOr(err)
		}
		s.log.Info("artwork approved", "artwork_id", artworkID, "admin_id", caller.AccountID)
		return nil

	case ActionReject:
		var imageRef string
		err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
			artwork, err := tx.Artworks.GetByID(ctx, artworkID)
			if err != nil {
				return err
			}
			if !artwork.Pending {
				return invalid("action", "approved artworks cannot be rejected")
			}
			imageRef = artwork.ImagePath

			if _, err := tx.Likes.DeleteByArtwork(ctx, artworkID); err != nil {
				return err
			}
			if _, err := tx.Comments.DeleteByArtwork(ctx, artworkID); err != nil {
				return err
			}
			return tx.Artworks.Delete(ctx, artworkID)
		})
		if err != nil {
			return notFoundOr(err)
		}

		if err := s.images.Remove(imageRef); err != nil {
			s.log.Warn("could not remove rejected image", "artwork_id", artworkID, "image", imageRef, "error", err)
		}
		s.log.Info("artwork rejected", "artwork_id", artworkID, "admin_id", caller.AccountID)
		return nil

	default:
		return invalid("action", "must be approve or reject")
	}
}
