package service

import (
	"context"
	"fmt"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/models"
	"artshare/internal/http-api/repository"
)

const (
	OrderRecent = "recent"
	OrderRandom = "random"

	DefaultPageSize = 24
)

type GalleryService interface {
	ListPublic(ctx context.Context, caller *Principal, order string, page int) (*dto.GalleryPage, error)
	ViewArtwork(ctx context.Context, caller *Principal, artworkID uint) (*dto.ArtworkDetail, error)
	ArtistDetail(ctx context.Context, caller *Principal, ownerID uint) (*dto.ArtistProfile, error)
	MyUploads(ctx context.Context, caller *Principal) ([]dto.ArtworkCard, error)
}

type galleryService struct {
	store         *repository.Store
	pageSize      int
	featuredCount int
}

func NewGalleryService(store *repository.Store, pageSize, featuredCount int) GalleryService {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &galleryService{store: store, pageSize: pageSize, featuredCount: featuredCount}
}

// ListPublic returns approved artworks only. OrderRandom yields a single page
// holding the featured sample.
func (s *galleryService) ListPublic(ctx context.Context, caller *Principal, order string, page int) (*dto.GalleryPage, error) {
	switch order {
	case OrderRandom:
		artworks, err := s.store.Artworks.SampleApproved(ctx, s.featuredCount)
		if err != nil {
			return nil, fmt.Errorf("sample artworks: %w", err)
		}
		cards, err := s.cards(ctx, caller, artworks)
		if err != nil {
			return nil, err
		}
		return dto.NewGalleryPage(cards, len(cards), 1, max(len(cards), 1)), nil

	case OrderRecent, "":
		if page < 1 {
			page = 1
		}
		artworks, total, err := s.store.Artworks.ListApproved(ctx, s.pageSize, (page-1)*s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("list artworks: %w", err)
		}
		cards, err := s.cards(ctx, caller, artworks)
		if err != nil {
			return nil, err
		}
		return dto.NewGalleryPage(cards, int(total), page, s.pageSize), nil

	default:
		return nil, invalid("order", "must be recent or random")
	}
}

// ViewArtwork returns the artwork with its comments, newest first.
func (s *galleryService) ViewArtwork(ctx context.Context, caller *Principal, artworkID uint) (*dto.ArtworkDetail, error) {
	artwork, err := visibleArtwork(ctx, s.store, caller, artworkID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards(ctx, caller, []models.Artwork{*artwork})
	if err != nil {
		return nil, err
	}

	comments, err := s.store.Comments.ListByArtwork(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	views := make([]dto.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, dto.FromModelToCommentView(&comments[i]))
	}

	return &dto.ArtworkDetail{Artwork: cards[0], Comments: views}, nil
}

// ArtistDetail is an account's public profile. Pending work is listed only
// for the owner and admins.
func (s *galleryService) ArtistDetail(ctx context.Context, caller *Principal, ownerID uint) (*dto.ArtistProfile, error) {
	account, err := s.store.Accounts.FindByID(ctx, ownerID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	includePending := caller.Owns(ownerID) || caller.IsAdmin()
	artworks, err := s.store.Artworks.ListByOwner(ctx, ownerID, includePending)
	if err != nil {
		return nil, fmt.Errorf("list artworks of %d: %w", ownerID, err)
	}
	cards, err := s.cards(ctx, caller, artworks)
	if err != nil {
		return nil, err
	}

	return &dto.ArtistProfile{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
		Surname:   account.Surname,
		Role:      account.Role,
		Artworks:  cards,
	}, nil
}

// MyUploads lists every artwork of the caller in any state, newest first.
func (s *galleryService) MyUploads(ctx context.Context, caller *Principal) ([]dto.ArtworkCard, error) {
	if err := Authorize(caller, models.RoleArtist, models.RoleAdmin); err != nil {
		return nil, err
	}

	artworks, err := s.store.Artworks.ListByOwner(ctx, caller.AccountID, true)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return s.cards(ctx, caller, artworks)
}

// cards decorates artworks with like counts and the caller's liked flag
// using one grouped query each.
func (s *galleryService) cards(ctx context.Context, caller *Principal, artworks []models.Artwork) ([]dto.ArtworkCard, error) {
	cards := make([]dto.ArtworkCard, 0, len(artworks))
	if len(artworks) == 0 {
		return cards, nil
	}

	ids := make([]uint, 0, len(artworks))
	for i := range artworks {
		ids = append(ids, artworks[i].ID)
	}

	counts, err := s.store.Likes.CountByArtworks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	liked := map[uint]bool{}
	if caller != nil {
		liked, err = s.store.Likes.LikedArtworkIDs(ctx, caller.AccountID, ids)
		if err != nil {
			return nil, fmt.Errorf("load liked artworks: %w", err)
		}
	}

	for i := range artworks {
		card := dto.FromModelToArtworkCard(&artworks[i])
		card.LikeCount = counts[card.ID]
		card.Liked = liked[card.ID]
		cards = append(cards, card)
	}
	return cards, nil
}
