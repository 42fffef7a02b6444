package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "book-chatbot/pkg/errors"
)

const defaultCookieName = "bookbot_session"

func (h *handler) processSendReq(c *gin.Context) (sendReq, error) {
	var req sendReq
	if err := c.ShouldBind(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "chat.delivery.http.processSendReq: %v", err)
		return req, pkgErrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return req, err
	}
	return req, nil
}

// sessionID reads the session cookie; empty means the client has no session yet.
func (h *handler) sessionID(c *gin.Context) string {
	id, err := c.Cookie(h.cfg.CookieName)
	if err != nil {
		return ""
	}
	return id
}

func (h *handler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, id, int(h.cfg.CookieMaxAge.Seconds()), "/", "", h.cfg.CookieSecure, true)
}
