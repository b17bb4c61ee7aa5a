package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	galleryService service.GalleryService
	log            *slog.Logger
}

func NewGalleryHandler(galleryService service.GalleryService, log *slog.Logger) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, log: log}
}

// RegisterRoutes registers the browsing pages; uploadsGate guards /my_uploads.
func (h *GalleryHandler) RegisterRoutes(router gin.IRoutes, uploadsGate gin.HandlerFunc) {
	router.GET("/", h.Index)
	router.GET("/gallery", h.Gallery)
	router.GET("/artwork/:artwork_id", h.Artwork)
	router.GET("/artist_detail/:owner_id", h.ArtistDetail)
	router.GET("/my_uploads", uploadsGate, h.MyUploads)
}

// Index shows a random sample of approved work
// GET /
func (h *GalleryHandler) Index(c *gin.Context) {
	featured, err := h.galleryService.ListPublic(c.Request.Context(), middleware.CurrentPrincipal(c), service.OrderRandom, 1)
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", page(c, "Home", gin.H{"Featured": featured.Items}))
}

// Gallery lists approved work, newest first
// GET /gallery?page=1
func (h *GalleryHandler) Gallery(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if pageNum < 1 {
		pageNum = 1
	}

	listing, err := h.galleryService.ListPublic(c.Request.Context(), middleware.CurrentPrincipal(c), service.OrderRecent, pageNum)
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.HTML(http.StatusOK, "gallery.html", page(c, "Gallery", gin.H{"Page": listing}))
}

// Artwork shows one artwork with its comments
// GET /artwork/:artwork_id
func (h *GalleryHandler) Artwork(c *gin.Context) {
	id, ok := parseID(c, "artwork_id")
	if !ok {
		notFound(c)
		return
	}

	detail, err := h.galleryService.ViewArtwork(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.HTML(http.StatusOK, "artwork.html", page(c, detail.Artwork.Title, gin.H{"Detail": detail}))
}

// ArtistDetail shows an account's public profile
// GET /artist_detail/:owner_id
func (h *GalleryHandler) ArtistDetail(c *gin.Context) {
	id, ok := parseID(c, "owner_id")
	if !ok {
		notFound(c)
		return
	}

	profile, err := h.galleryService.ArtistDetail(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.HTML(http.StatusOK, "artist_detail.html", page(c, profile.Username, gin.H{"Profile": profile}))
}

// MyUploads lists the caller's own artworks in every state
// GET /my_uploads
func (h *GalleryHandler) MyUploads(c *gin.Context) {
	artworks, err := h.galleryService.MyUploads(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.HTML(http.StatusOK, "my_uploads.html", page(c, "My uploads", gin.H{"Artworks": artworks}))
}
