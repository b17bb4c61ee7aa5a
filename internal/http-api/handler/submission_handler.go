package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	moderationService service.ModerationService
	log               *slog.Logger
}

func NewSubmissionHandler(moderationService service.ModerationService, log *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{moderationService: moderationService, log: log}
}

// RegisterRoutes registers the upload form behind the given handlers.
func (h *SubmissionHandler) RegisterRoutes(router gin.IRoutes, gate ...gin.HandlerFunc) {
	router.GET("/upload", chain(gate, h.ShowUpload)...)
	router.POST("/upload", chain(gate, h.Upload)...)
}

// ShowUpload renders the upload form
// GET /upload
func (h *SubmissionHandler) ShowUpload(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", page(c, "Upload", nil))
}

// Upload submits an artwork for moderation
// POST /upload (multipart: title, description, image)
func (h *SubmissionHandler) Upload(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	formData := gin.H{"FormTitle": title, "FormDescription": description}

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: image is too large", service.ErrUpload)
		} else {
			err = &service.ValidationError{Field: "image", Message: "is required"}
		}
		respondError(c, h.log, "upload.html", "Upload", formData, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, "upload.html", "Upload", formData, fmt.Errorf("%w: could not read image", service.ErrUpload))
		return
	}
	defer file.Close()

	artwork, err := h.moderationService.Submit(c.Request.Context(), middleware.CurrentPrincipal(c), dto.SubmitInput{
		Title:       title,
		Description: description,
		FileName:    header.Filename,
		Image:       file,
	})
	if err != nil {
		respondError(c, h.log, "upload.html", "Upload", formData, err)
		return
	}

	c.HTML(http.StatusCreated, "upload.html", page(c, "Upload", gin.H{
		"Notice": fmt.Sprintf("%q was submitted and is waiting for approval.", artwork.Title),
	}))
}
