package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementService service.EngagementService
	log               *slog.Logger
}

func NewEngagementHandler(engagementService service.EngagementService, log *slog.Logger) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService, log: log}
}

// RegisterRoutes registers the comment form post and the like endpoint.
func (h *EngagementHandler) RegisterRoutes(router gin.IRoutes, commentGate, likeGate []gin.HandlerFunc) {
	router.POST("/comment/:artwork_id", chain(commentGate, h.Comment)...)
	router.POST("/like/:artwork_id", chain(likeGate, h.Like)...)
}

// Comment adds a comment and returns to the artwork page
// POST /comment/:artwork_id (form: comment)
func (h *EngagementHandler) Comment(c *gin.Context) {
	id, ok := parseID(c, "artwork_id")
	if !ok {
		notFound(c)
		return
	}

	_, err := h.engagementService.PostComment(c.Request.Context(), middleware.CurrentPrincipal(c), id, c.PostForm("comment"))
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artwork/%d#comments", id))
}

// Like toggles the caller's like
// POST /like/:artwork_id
func (h *EngagementHandler) Like(c *gin.Context) {
	id, ok := parseID(c, "artwork_id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "artwork not found"})
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorization):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "login required"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "artwork not found"})
		case errors.Is(err, service.ErrDuplicateLike):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "please try again"})
		default:
			c.Error(err)
			h.log.Error("toggle like failed", "artwork_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"like_count": result.Count,
		"is_liked":   result.Liked,
	})
}
