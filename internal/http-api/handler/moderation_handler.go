package handler

import (
	"log/slog"
	"net/http"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService service.ModerationService
	log               *slog.Logger
}

func NewModerationHandler(moderationService service.ModerationService, log *slog.Logger) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService, log: log}
}

func (h *ModerationHandler) RegisterRoutes(router gin.IRoutes, gate ...gin.HandlerFunc) {
	router.GET("/admin/approve", chain(gate, h.Queue)...)
	router.POST("/admin/approve", chain(gate, h.Decide)...)
}

// Queue lists artworks waiting for a decision
// GET /admin/approve
func (h *ModerationHandler) Queue(c *gin.Context) {
	pending, err := h.moderationService.ListPending(c.Request.Context(), middleware.CurrentPrincipal(c))
	if err != nil {
		respondError(c, h.log, "", "", nil, err)
		return
	}
	c.HTML(http.StatusOK, "admin_approve.html", page(c, "Approve artworks", gin.H{"Pending": pending}))
}

// Decide approves or rejects one artwork
// POST /admin/approve (form: artwork_id, action)
func (h *ModerationHandler) Decide(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	var form dto.DecideInput
	if err := c.ShouldBind(&form); err != nil || form.ArtworkID == 0 {
		h.rerender(c, principal, &service.ValidationError{Field: "artwork_id", Message: "is missing or invalid"})
		return
	}

	if err := h.moderationService.Decide(c.Request.Context(), principal, form.ArtworkID, form.Action); err != nil {
		h.rerender(c, principal, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/approve")
}

// rerender shows the queue again with the error on top.
func (h *ModerationHandler) rerender(c *gin.Context, principal *service.Principal, err error) {
	pending, listErr := h.moderationService.ListPending(c.Request.Context(), principal)
	if listErr != nil {
		respondError(c, h.log, "", "", nil, listErr)
		return
	}
	respondError(c, h.log, "admin_approve.html", "Approve artworks", gin.H{"Pending": pending}, err)
}
