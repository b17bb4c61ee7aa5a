package handler

import (
	"log/slog"
	"net/http"

	"artshare/internal/http-api/dto"
	"artshare/internal/http-api/middleware"
	"artshare/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	cookie      middleware.CookieOptions
	log         *slog.Logger
}

func NewAuthHandler(authService service.AuthService, cookie middleware.CookieOptions, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

// RegisterRoutes registers account routes; limited applies to the form posts.
func (h *AuthHandler) RegisterRoutes(router gin.IRoutes, limited ...gin.HandlerFunc) {
	router.GET("/register", h.ShowRegister)
	router.POST("/register", chain(limited, h.Register)...)
	router.GET("/login", h.ShowLogin)
	router.POST("/login", chain(limited, h.Login)...)
	router.GET("/logout", h.Logout)
}

// ShowRegister renders the sign-up form
// GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", page(c, "Register", gin.H{"Form": dto.RegisterInput{}}))
}

// Register creates an account and sends the user to the login page
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterInput
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", page(c, "Register", gin.H{
			"Form":  form,
			"Error": "Could not read the form.",
		}))
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), form); err != nil {
		form.Password = ""
		respondError(c, h.log, "register.html", "Register", gin.H{"Form": form}, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// ShowLogin renders the login form
// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	data := gin.H{}
	if c.Query("registered") != "" {
		data["Notice"] = "Registration successful. Please log in."
	}
	c.HTML(http.StatusOK, "login.html", page(c, "Log in", data))
}

// Login authenticates and sets the session cookie
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginInput
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", page(c, "Log in", gin.H{"Error": "Could not read the form."}))
		return
	}

	token, principal, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondError(c, h.log, "login.html", "Log in", gin.H{"Username": form.Username}, err)
		return
	}

	middleware.SetSessionCookie(c, token, h.cookie)
	h.log.Info("login", "account_id", principal.AccountID, "username", principal.Username)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the session and clears the cookie
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.log.Error("failed to end session", "error", err)
		}
	}
	middleware.ClearSessionCookie(c, h.cookie)
	c.Redirect(http.StatusSeeOther, "/")
}
