package dto

import (
	"io"
	"time"

	"artshare/internal/http-api/models"
)

// SubmitInput carries an upload into the moderation workflow.
type SubmitInput struct {
	Title       string
	Description string
	FileName    string // as sent by the client, only its extension is used
	Image       io.Reader
}

// DecideInput: fields of the moderation form
type DecideInput struct {
	ArtworkID uint   `form:"artwork_id"`
	Action    string `form:"action"`
}

// ArtworkCard is one artwork as shown in listings.
type ArtworkCard struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Pending       bool      `json:"pending"`
	LikeCount     int64     `json:"like_count"`
	Liked         bool      `json:"liked"`
}

// FromModelToArtworkCard converts an Artwork (with Owner preloaded) to a card.
func FromModelToArtworkCard(artwork *models.Artwork) ArtworkCard {
	return ArtworkCard{
		ID:            artwork.ID,
		Title:         artwork.Title,
		Description:   artwork.Description,
		ImageURL:      "/" + artwork.ImagePath,
		OwnerID:       artwork.AccountID,
		OwnerUsername: artwork.Owner.Username,
		SubmittedAt:   artwork.SubmittedAt,
		Pending:       artwork.Pending,
	}
}

// CommentView is a comment with its author's username.
type CommentView struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModelToCommentView(comment *models.Comment) CommentView {
	return CommentView{
		ID:             comment.ID,
		AuthorID:       comment.AccountID,
		AuthorUsername: comment.Author.Username,
		Body:           comment.Body,
		CreatedAt:      comment.CreatedAt,
	}
}

// ArtworkDetail backs the artwork page.
type ArtworkDetail struct {
	Artwork  ArtworkCard   `json:"artwork"`
	Comments []CommentView `json:"comments"`
}

// ArtistProfile is the public view of an account. Email and password hash
// are never part of it.
type ArtistProfile struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	FirstName string        `json:"first_name"`
	Surname   string        `json:"surname"`
	Role      models.Role   `json:"role"`
	Artworks  []ArtworkCard `json:"artworks"`
}

// LikeResult is the state after a toggle.
type LikeResult struct {
	Liked bool  `json:"is_liked"`
	Count int64 `json:"like_count"`
}
