package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ammu2244/chatgpt-gateway/chat"
)

// SendMessageRequest is the body of POST /v1/chat. Attachment carries only
// the filename; the file itself never reaches the gateway.
type SendMessageRequest struct {
	Message    string `json:"message"`
	Attachment string `json:"attachment,omitempty"`
}

// GetConversation returns the live transcript.
// GET /v1/chat?user_email=
func (h *Handler) GetConversation(c echo.Context) error {
	ctrl, err := h.controllerFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.State())
}

// SendMessage appends a user message and returns the assistant reply,
// remote or local.
// POST /v1/chat?user_email=
func (h *Handler) SendMessage(c echo.Context) error {
	ctrl, err := h.controllerFor(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	reply, err := ctrl.Send(c.Request().Context(), req.Message, req.Attachment)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is empty"})
		}
		log.Printf("ERROR: send failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to send message"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"reply": reply,
	})
}

// NewChat archives the current conversation and starts a fresh one.
// POST /v1/chat/new?user_email=
func (h *Handler) NewChat(c echo.Context) error {
	ctrl, err := h.controllerFor(c)
	if err != nil {
		return err
	}
	ctrl.NewChat(c.Request().Context())
	return c.JSON(http.StatusOK, ctrl.State())
}
