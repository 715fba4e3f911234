package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AffanWajid12/resturant-console/backend"
)

// Login godoc
//
// @Summary Sign in against the restaurant platform
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/login [post]
func (h *MainHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.client.Login(ctx, backend.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		slog.InfoContext(ctx, "login rejected", slog.String("email", req.Email), slog.Any("err", err))
		return relayUpstreamError(c, err)
	}

	session, err := h.store.Create(ctx, result.Token, result.Username, result.Role)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist session", slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to create session"})
	}

	c.SetCookie(&http.Cookie{
		Name:     h.settings.Session.CookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(h.settings.Session.TTLInMinutes) * time.Minute),
	})

	slog.InfoContext(ctx, "login succeeded", slog.String("username", result.Username), slog.String("role", result.Role))

	return c.JSON(http.StatusOK, LoginResponse{Username: result.Username, Role: result.Role})
}

// Logout godoc
//
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 204 {string} string ""
// @Router /v1/auth/logout [post]
func (h *MainHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	session := h.session(c)

	if err := h.store.Delete(ctx, session.ID); err != nil {
		slog.ErrorContext(ctx, "failed to delete session", slog.Any("err", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to log out"})
	}

	h.dropViews(session.ID)

	c.SetCookie(&http.Cookie{
		Name:     h.settings.Session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.NoContent(http.StatusNoContent)
}

// Me godoc
//
// @Summary Describe the signed-in principal
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/me [get]
func (h *MainHandler) Me(c echo.Context) error {
	session := h.session(c)
	return c.JSON(http.StatusOK, MeResponse{Username: session.Username, Role: session.Role})
}
