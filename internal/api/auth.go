package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"net/url"  // Query escaping
	"strings"  // String manipulation
	"time"     // Session lifetime

	"travel_booking/internal/domain"     // Domain errors
	"travel_booking/internal/flash"      // One-shot notices
	"travel_booking/internal/middleware" // Session cookie helpers
	"travel_booking/internal/service"    // Identity store
	"travel_booking/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Name     string `form:"name"`     // Display name
	Email    string `form:"email"`    // Login e-mail
	Password string `form:"password"` // Plain password, hashed by the identity service
	Phone    string `form:"phone"`    // Optional phone
}

// LoginRequest is the sign-in form
type LoginRequest struct {
	Email    string `form:"email"`    // Login e-mail
	Password string `form:"password"` // Plain password
	Next     string `form:"next"`     // Where to go after login
}

// safeNext only allows local paths as a post-login destination
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// loginURL points back at the login form, keeping a local post-login destination
func loginURL(next string) string {
	if next = safeNext(next); next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// LoginPageHandler renders the login form
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "login", gin.H{"next": c.Query("next")})
	}
}

// LoginHandler checks credentials and starts a session cookie
func LoginHandler(identity *service.IdentityService, jwtSecret string, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		_ = c.ShouldBind(&req) // All fields are plain strings
		if req.Next == "" {
			req.Next = c.Query("next")
		}
		user, err := identity.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				logrus.WithFields(logrus.Fields{
					"email": service.NormalizeEmail(req.Email),
					"ip":    c.ClientIP(),
				}).Warn("Failed login")
				flash.Redirect(c, loginURL(req.Next), flash.Error, "Email ou senha incorretos!")
				return
			}
			fail(c, err, "login")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			fail(c, err, "login")
			return
		}
		middleware.StartSession(c, user.Principal(), token, int(ttl.Seconds()), secure)
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"admin":   user.IsAdmin,
		}).Info("User logged in")
		flash.Redirect(c, safeNext(req.Next), flash.Success, "Login realizado com sucesso!")
	}
}

// RegisterPageHandler renders the sign-up form
func RegisterPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "register", nil)
	}
}

// RegisterHandler creates a customer account
func RegisterHandler(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		_ = c.ShouldBind(&req)
		_, err := identity.Register(c.Request.Context(), service.Registration{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				flash.Redirect(c, "/register", flash.Error, "Email já cadastrado!")
				return
			}
			respondError(c, err, "/register", "register")
			return
		}
		flash.Redirect(c, "/login", flash.Success, "Cadastro realizado com sucesso!")
	}
}

// LogoutHandler ends the session
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSession(c)
		flash.Redirect(c, "/", flash.Success, "Logout realizado com sucesso!")
	}
}
