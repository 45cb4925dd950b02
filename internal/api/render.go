package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // ID parsing
	"strings"  // String manipulation
	"unicode"  // Notice capitalization

	"travel_booking/internal/domain"     // Domain models and errors
	"travel_booking/internal/flash"      // One-shot notices
	"travel_booking/internal/middleware" // Session helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

const htmlKey = "render_html"

// render writes a page. With templates loaded it renders <page>.html, otherwise
// the same data is sent as a JSON document.
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["page"] = page
	if n := flash.Pop(c); n != nil {
		data["flash"] = n // Notice left by the previous redirect
	}
	if p, ok := middleware.CurrentPrincipal(c); ok {
		data["user"] = p
	}
	if c.GetBool(htmlKey) {
		c.HTML(status, page+".html", data)
		return
	}
	c.JSON(status, data)
}

// fail logs an unexpected error and answers with the generic failure page
func fail(c *gin.Context, err error, action string) {
	fields := logrus.Fields{
		"action":     action,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("request_id"),
		"error":      err.Error(),
	}
	if p, ok := middleware.CurrentPrincipal(c); ok {
		fields["user_id"] = p.UserID
	}
	logrus.WithFields(fields).Error("Request failed")
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "error", gin.H{"message": "Ocorreu um erro inesperado. Tente novamente."})
}

// respondError maps domain errors to a notice plus redirect; anything else is a failure
func respondError(c *gin.Context, err error, back, action string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		flash.Redirect(c, back, flash.Error, notice(verr.Message))
	case errors.Is(err, domain.ErrAccessDenied):
		flash.Redirect(c, "/", flash.Error, "Acesso negado!")
	case errors.Is(err, domain.ErrNotFound):
		flash.Redirect(c, back, flash.Error, "Pacote não encontrado!")
	case errors.Is(err, domain.ErrEmptyCart):
		flash.Redirect(c, "/", flash.Error, "Carrinho vazio!")
	default:
		fail(c, err, action)
	}
}

// notice turns a validation message into a sentence
func notice(msg string) string {
	if msg == "" {
		return "Dados inválidos!"
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	s := string(r)
	if !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, ".") {
		s += "!"
	}
	return s
}

// principal returns the session principal; routes using it sit behind RequireLogin
func principal(c *gin.Context) domain.Principal {
	p, _ := middleware.CurrentPrincipal(c)
	return p
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
