package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/session"
	"clinic-app-server/internal/utils"
)

// AuthHandler handles registration, login and session management.
type AuthHandler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions session.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions session.Store) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Sessions: sessions}
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=patient doctor"`
	Email          string `json:"email" binding:"required,email"`
	FullName       string `json:"fullName" binding:"required"`
	Specialization string `json:"specialization"`
}

// Register handles account registration. A session is opened for the new
// account so the client is logged in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Check if the username is already taken
	var existingUser models.User
	if err := h.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "Username already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Username:       req.Username,
		Role:           models.Role(req.Role),
		Email:          req.Email,
		FullName:       req.FullName,
		Specialization: req.Specialization,
	}

	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create account: "+err.Error())
		return
	}

	sess, err := h.Sessions.Create(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to open session: "+err.Error())
		return
	}
	h.setSessionCookie(c, sess.Token)

	utils.Created(c, "Account registered successfully", user.Sanitize())
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles credential validation and opens a session. Unknown usernames
// and wrong passwords produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid username or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	sess, err := h.Sessions.Create(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to open session: "+err.Error())
		return
	}
	h.setSessionCookie(c, sess.Token)

	utils.Success(c, "Login successful", user.Sanitize())
}

// Logout destroys the current session. It succeeds even when no session
// exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.Cfg.SessionCookieName)
	if err == nil && token != "" {
		if err := h.Sessions.Destroy(token); err != nil {
			utils.InternalServerError(c, "Failed to destroy session: "+err.Error())
			return
		}
	}

	h.clearSessionCookie(c)
	utils.Success(c, "Logout successful", nil)
}

// CurrentUser returns the account bound to the active session.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	utils.Success(c, "Account fetched successfully", user.Sanitize())
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		h.Cfg.SessionCookieName,
		token,
		h.Cfg.SessionExpiryHours*60*60,     // Max age in seconds
		"/",                                // Path
		"",                                 // Domain (empty means current domain)
		h.Cfg.Environment != "development", // Secure (true in prod, false in dev)
		true,                               // HTTP only
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(
		h.Cfg.SessionCookieName,
		"",
		-1, // MaxAge (negative to expire immediately)
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
}
