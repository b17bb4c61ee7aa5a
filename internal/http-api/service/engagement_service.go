package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"
)

const (
	maxCommentLen   = 2000
	maxLikeAttempts = 3
)

type EngagementService interface {
	PostComment(ctx context.Context, caller *Principal, artworkID uint, text string) (*dto.CommentView, error)
	ToggleLike(ctx context.Context, caller *Principal, artworkID uint) (*dto.LikeResult, error)
	LikeCount(ctx context.Context, artworkID uint) (int64, error)
}

type engagementService struct {
	store *repository.Store
}

func NewEngagementService(store *repository.Store) EngagementService {
	return &engagementService{store: store}
}

// visibleArtwork loads the artwork or reports ErrNotFound when the caller may not see it.
func visibleArtwork(ctx context.Context, tx *repository.Store, caller *Principal, artworkID uint) (*models.Artwork, error) {
	artwork, err := tx.Artworks.GetByID(ctx, artworkID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !canSee(caller, artwork) {
		return nil, ErrNotFound
	}
	return artwork, nil
}

// PostComment attaches a plain-text comment to an artwork.
func (s *engagementService) PostComment(ctx context.Context, caller *Principal, artworkID uint, text string) (*dto.CommentView, error) {
	if err := Authorize(caller); err != nil {
		return nil, err
	}

	body := cleanText(text)
	if body == "" {
		return nil, invalid("comment", "must not be empty")
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return nil, invalid("comment", fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}

	comment := &models.Comment{
		ArtworkID: artworkID,
		AccountID: caller.AccountID,
		Body:      body,
	}
	err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
		if _, err := visibleArtwork(ctx, tx, caller, artworkID); err != nil {
			return err
		}
		return tx.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}

	comment.Author = models.Account{ID: caller.AccountID, Username: caller.Username}
	view := dto.FromModelToCommentView(comment)
	return &view, nil
}

// ToggleLike flips the caller's like. Two concurrent toggles from the same
// account can both miss the delete and race on the insert; the loser retries
// and then sees the winner's row.
func (s *engagementService) ToggleLike(ctx context.Context, caller *Principal, artworkID uint) (*dto.LikeResult, error) {
	if err := Authorize(caller); err != nil {
		return nil, err
	}

	var err error
	for attempt := 0; attempt < maxLikeAttempts; attempt++ {
		var result *dto.LikeResult
		result, err = s.toggleOnce(ctx, caller, artworkID)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrDuplicateLike) {
			return nil, err
		}
	}
	return nil, err
}

func (s *engagementService) toggleOnce(ctx context.Context, caller *Principal, artworkID uint) (*dto.LikeResult, error) {
	result := &dto.LikeResult{}
	err := s.store.WithinTransaction(ctx, func(tx *repository.Store) error {
		if _, err := visibleArtwork(ctx, tx, caller, artworkID); err != nil {
			return err
		}

		deleted, err := tx.Likes.Delete(ctx, caller.AccountID, artworkID)
		if err != nil {
			return err
		}
		if !deleted {
			err := tx.Likes.Create(ctx, &models.Like{AccountID: caller.AccountID, ArtworkID: artworkID})
			if err != nil {
				if errors.Is(err, repository.ErrDuplicateKey) {
					return ErrDuplicateLike
				}
				return err
			}
		}
		result.Liked = !deleted

		result.Count, err = tx.Likes.CountByArtwork(ctx, artworkID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *engagementService) LikeCount(ctx context.Context, artworkID uint) (int64, error) {
	return s.store.Likes.CountByArtwork(ctx, artworkID)
}
