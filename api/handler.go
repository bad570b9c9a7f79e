// Package api provides HTTP handlers for the chat gateway. The browser
// views are this API's only consumer; it exposes the chat controller and
// nothing else.
package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/ammu2244/chatgpt-gateway/chat"
)

// ControllerFactory builds a controller for a user the first time they
// show up.
type ControllerFactory func(userID string) *chat.Controller

// Handler handles HTTP requests. Controllers are created lazily per
// user_email and activated once.
type Handler struct {
	mu          sync.Mutex
	controllers map[string]*chat.Controller
	factory     ControllerFactory
}

// NewHandler creates a new handler.
func NewHandler(factory ControllerFactory) *Handler {
	return &Handler{
		controllers: make(map[string]*chat.Controller),
		factory:     factory,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/chat", h.GetConversation)
	e.POST("/v1/chat", h.SendMessage)
	e.POST("/v1/chat/new", h.NewChat)

	e.GET("/v1/sessions", h.ListSessions)
	e.POST("/v1/sessions/:session_id/load", h.LoadSession)
	e.DELETE("/v1/sessions/:session_id", h.DeleteSession)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// controllerFor resolves the controller for the request's user_email,
// creating and activating one on first use.
func (h *Handler) controllerFor(c echo.Context) (*chat.Controller, error) {
	userID := c.QueryParam("user_email")
	if userID == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "user_email is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	ctrl, ok := h.controllers[userID]
	if !ok {
		ctrl = h.factory(userID)
		ctrl.Activate(c.Request().Context())
		h.controllers[userID] = ctrl
	}
	return ctrl, nil
}
