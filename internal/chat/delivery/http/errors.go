package http

import (
	"errors"
	"net/http"

	"book-chatbot/internal/chat"
	pkgErrors "book-chatbot/pkg/errors"
)

var errMessageRequired = pkgErrors.NewHTTPError(http.StatusBadRequest, "message is required")

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Unknown errors are I/O failures and surface as 500.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return errMessageRequired
	case errors.Is(err, chat.ErrSessionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "session not found")
	case errors.Is(err, chat.ErrConversationNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "conversation not found")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
