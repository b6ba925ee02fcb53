package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/webtech/cameralog/internal/flash"
	"github.com/webtech/cameralog/internal/service"
	"github.com/webtech/cameralog/internal/ui"
	"github.com/webtech/cameralog/internal/ui/pages"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login(pages.NewPage(w, r)))
}

// Login sets the session when some camera carries the submitted email and
// date. A mismatch re-renders the form instead of redirecting.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	date := r.FormValue("year_date")

	camera, err := h.authService.Login(r.Context(), email, date)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		flash.Danger(w, r, "Please enter Email and Date")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		slog.Info("login failed", "email", email)
		page := pages.NewPage(w, r)
		page.Flashes = append(page.Flashes, flash.Message{Category: flash.CategoryDanger, Text: "Invalid Email or Date"})
		ui.Render(w, r, pages.Login(page))
		return
	case err != nil:
		slog.Error("login lookup failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.authService.GenerateToken(camera.Email)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.authService.SetSessionCookie(w, token)

	slog.Info("logged in", "email", camera.Email, "camera_id", camera.ID)
	flash.Success(w, r, "Login successful!")
	http.Redirect(w, r, "/rgstr", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	flash.Success(w, r, "Logged out successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
