// Package flash carries one-shot user notices across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

// Notice kinds
const (
	Success = "success"
	Error   = "error"
)

// Notice is a message shown once on the next page
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Set stores a notice for the next request
func Set(c *gin.Context, kind, message string) {
	b, _ := json.Marshal(Notice{Kind: kind, Message: message})
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(b), 300, "/", "", false, true)
}

// Pop returns the pending notice, if any, and clears it
func Pop(c *gin.Context) *Notice {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(b, &n); err != nil {
		return nil
	}
	return &n
}

// Redirect sets a notice and sends the client to location with 303 See Other
func Redirect(c *gin.Context, location, kind, message string) {
	Set(c, kind, message)
	c.Redirect(http.StatusSeeOther, location)
}
