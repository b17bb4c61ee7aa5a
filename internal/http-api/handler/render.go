package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// TemplateFuncs are available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("2 Jan 2006")
		},
	}
}

// LoadTemplates parses every page under dir into the engine.
func LoadTemplates(router *gin.Engine, dir string) {
	router.SetFuncMap(TemplateFuncs())
	router.LoadHTMLGlob(filepath.Join(dir, "*.html"))
}

// page merges the per-page values with what the layout needs.
func page(c *gin.Context, title string, data gin.H) gin.H {
	out := gin.H{
		"Title":     title,
		"Principal": middleware.CurrentPrincipal(c),
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

// chain returns a fresh handler list so callers never share a backing array.
func chain(gate []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return slices.Concat(gate, []gin.HandlerFunc{h})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", page(c, "Not found", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "The page you were looking for does not exist.",
	}))
}

// userMessage is the text shown to the caller for an expected failure.
func userMessage(err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		field := strings.ReplaceAll(verr.Field, "_", " ")
		if field == "" {
			return verr.Message
		}
		return strings.ToUpper(field[:1]) + field[1:] + " " + verr.Message
	}
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		return "Username or email already exists."
	case errors.Is(err, service.ErrAuthentication):
		return "Invalid username or password."
	case errors.Is(err, service.ErrInvalidFileType):
		return "Only png, jpg, jpeg and gif images are accepted."
	case errors.Is(err, service.ErrUpload):
		msg := err.Error()
		if _, detail, ok := strings.Cut(msg, ": "); ok {
			return "Upload failed: " + detail + "."
		}
		return "Upload failed."
	}
	return "Something went wrong."
}

// respondError maps a service error onto a page response. Form errors
// re-render form (with data) so the user can correct the input; when form is
// empty the error page is used instead.
func respondError(c *gin.Context, log *slog.Logger, form, title string, data gin.H, err error) {
	status := 0
	switch {
	case errors.Is(err, service.ErrAuthorization):
		if middleware.CurrentPrincipal(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
		} else {
			c.Redirect(http.StatusSeeOther, "/")
		}
		return
	case errors.Is(err, service.ErrNotFound):
		notFound(c)
		return
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrUpload),
		errors.Is(err, service.ErrDuplicateLike):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateAccount):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAuthentication):
		status = http.StatusUnauthorized
	default:
		c.Error(err)
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", page(c, "Error", gin.H{
			"Status":  http.StatusInternalServerError,
			"Message": "Something went wrong on our side. Please try again.",
		}))
		return
	}

	if form == "" {
		c.HTML(status, "error.html", page(c, "Error", gin.H{
			"Status":  status,
			"Message": userMessage(err),
		}))
		return
	}
	if data == nil {
		data = gin.H{}
	}
	data["Error"] = userMessage(err)
	c.HTML(status, form, page(c, title, data))
}
