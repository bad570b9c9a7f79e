package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ammu2244/chatgpt-gateway/chat"
)

// ListSessions returns the saved conversations, newest first.
// GET /v1/sessions?user_email=
func (h *Handler) ListSessions(c echo.Context) error {
	ctrl, err := h.controllerFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": ctrl.Sessions(),
	})
}

// LoadSession makes a saved conversation the live one.
// POST /v1/sessions/:session_id/load?user_email=
func (h *Handler) LoadSession(c echo.Context) error {
	ctrl, err := h.controllerFor(c)
	if err != nil {
		return err
	}

	if err := ctrl.LoadChat(c.Request().Context(), c.Param("session_id")); err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
	}
	return c.JSON(http.StatusOK, ctrl.State())
}

// DeleteSession removes a saved conversation.
// DELETE /v1/sessions/:session_id?user_email=
func (h *Handler) DeleteSession(c echo.Context) error {
	ctrl, err := h.controllerFor(c)
	if err != nil {
		return err
	}
	ctrl.DeleteChat(c.Request().Context(), c.Param("session_id"))
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
