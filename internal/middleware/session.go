package middleware

import (
	"context"  // Context for user lookups
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"net/url"  // Query escaping for the login redirect
	"strings"  // String manipulation

	"travel_booking/internal/domain" // Domain models
	"travel_booking/internal/flash"  // One-shot notices
	"travel_booking/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// SessionCookie holds the signed session token
const SessionCookie = "session"

const principalKey = "principal"

// PrincipalLoader restores the caller behind a session token
type PrincipalLoader interface {
	Lookup(ctx context.Context, id uint) (domain.Principal, error)
}

// Session resolves the session cookie (or a Bearer token) into a Principal
// stored on the context. Anonymous requests pass through untouched.
func Session(secret string, users PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := sessionToken(c) // Cookie first, then Authorization header
		if tokenStr == "" {
			c.Next()
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			ClearSession(c) // Expired or forged token
			c.Next()
			return
		}
		p, err := users.Lookup(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				ClearSession(c) // Account no longer exists
			} else {
				logrus.WithFields(logrus.Fields{
					"user_id": claims.UserID,
					"error":   err.Error(),
				}).Error("Session lookup failed")
			}
			c.Next()
			return
		}
		c.Set(principalKey, p) // Store principal in context
		c.Next()               // Proceed to the next handler
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// StartSession issues the session cookie for p
func StartSession(c *gin.Context, p domain.Principal, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
	c.Set(principalKey, p)
}

// ClearSession drops the session cookie
func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// CurrentPrincipal returns the authenticated caller, if any
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequireLogin sends anonymous callers to the login page, or answers 401 on JSON endpoints
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); ok {
			c.Next()
			return
		}
		denyAnonymous(c)
	}
}

func denyAnonymous(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	next := url.QueryEscape(c.Request.URL.RequestURI())
	flash.Redirect(c, "/login?next="+next, flash.Error, "Faça login para acessar esta página.")
	c.Abort()
}
