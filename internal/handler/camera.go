package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/webtech/cameralog/internal/ctxkeys"
	"github.com/webtech/cameralog/internal/flash"
	"github.com/webtech/cameralog/internal/model"
	"github.com/webtech/cameralog/internal/repository"
	"github.com/webtech/cameralog/internal/service"
	"github.com/webtech/cameralog/internal/ui"
	"github.com/webtech/cameralog/internal/ui/pages"
)

// maxUploadMemory is how much of a multipart body is held in memory; the
// rest of a photo spills to a temp file.
const maxUploadMemory = 10 << 20

type CameraHandler struct {
	cameraService *service.CameraService
}

func NewCameraHandler(cameraService *service.CameraService) *CameraHandler {
	return &CameraHandler{
		cameraService: cameraService,
	}
}

func (h *CameraHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, nil)
}

// Register creates a camera, or updates one when the form carries an id.
// Updating requires a session; creating does not.
func (h *CameraHandler) Register(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("failed to parse camera form", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input := service.CameraInput{
		Brand: r.FormValue("brand"),
		Model: r.FormValue("model"),
		Type:  r.FormValue("camera_type"),
		Email: r.FormValue("email"),
		Date:  r.FormValue("year_date"),
	}
	photo := photoHeader(r)

	rawID := strings.TrimSpace(r.FormValue("id"))
	if rawID == "" {
		h.create(w, r, input, photo)
		return
	}

	if !ctxkeys.LoggedIn(r.Context()) {
		flash.Danger(w, r, "Login required to edit records")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		flash.Danger(w, r, "Camera not found")
		http.Redirect(w, r, "/rgstr", http.StatusSeeOther)
		return
	}
	input.ID = id

	h.update(w, r, input, photo)
}

func (h *CameraHandler) create(w http.ResponseWriter, r *http.Request, input service.CameraInput, photo *multipart.FileHeader) {
	camera, err := h.cameraService.Create(r.Context(), input, photo)
	if err != nil {
		if h.invalidInput(w, r, err) {
			return
		}
		slog.Error("failed to create camera", "error", err)
		http.Error(w, "Failed to save camera", http.StatusInternalServerError)
		return
	}

	slog.Info("camera created", "camera_id", camera.ID, "has_photo", camera.HasPhoto())
	h.renderRegister(w, r, nil, flash.Message{Category: flash.CategorySuccess, Text: "Camera added successfully!"})
}

func (h *CameraHandler) update(w http.ResponseWriter, r *http.Request, input service.CameraInput, photo *multipart.FileHeader) {
	err := h.cameraService.Update(r.Context(), input, photo)
	if err != nil {
		if h.invalidInput(w, r, err) {
			return
		}
		if errors.Is(err, repository.ErrCameraNotFound) {
			flash.Danger(w, r, "Camera not found")
			http.Redirect(w, r, "/rgstr", http.StatusSeeOther)
			return
		}
		slog.Error("failed to update camera", "error", err, "camera_id", input.ID)
		http.Error(w, "Failed to save camera", http.StatusInternalServerError)
		return
	}

	slog.Info("camera updated", "camera_id", input.ID, "email", ctxkeys.SessionEmail(r.Context()))
	h.renderRegister(w, r, nil, flash.Message{Category: flash.CategorySuccess, Text: "Camera updated successfully!"})
}

// invalidInput reports validation failures back to the form.
func (h *CameraHandler) invalidInput(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		flash.Danger(w, r, "All fields are required!")
	case errors.Is(err, service.ErrInvalidDate):
		flash.Danger(w, r, "Date must be YYYY-MM-DD")
	default:
		return false
	}

	http.Redirect(w, r, "/rgstr", http.StatusSeeOther)
	return true
}

func (h *CameraHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	camera, err := h.cameraService.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCameraNotFound) {
			flash.Danger(w, r, "Camera not found")
			http.Redirect(w, r, "/rgstr", http.StatusSeeOther)
			return
		}
		slog.Error("failed to load camera", "error", err, "camera_id", id)
		http.Error(w, "Failed to load camera", http.StatusInternalServerError)
		return
	}

	h.renderRegister(w, r, camera)
}

func (h *CameraHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	err := h.cameraService.Delete(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete camera", "error", err, "camera_id", id)
		http.Error(w, "Failed to delete camera", http.StatusInternalServerError)
		return
	}

	slog.Info("camera deleted", "camera_id", id, "email", ctxkeys.SessionEmail(r.Context()))
	flash.Success(w, r, "Camera deleted successfully!")
	http.Redirect(w, r, "/rgstr", http.StatusSeeOther)
}

func (h *CameraHandler) CardsPage(w http.ResponseWriter, r *http.Request) {
	cameras, err := h.cameraService.Cameras(r.Context())
	if err != nil {
		slog.Error("failed to list cameras", "error", err)
		http.Error(w, "Failed to load cameras", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Cards(pages.CardsData{
		Page:    pages.NewPage(w, r),
		Cameras: cameras,
	}))
}

func (h *CameraHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, r)
		return
	}

	err := h.cameraService.UpdateDescription(r.Context(), id, r.FormValue("description"))
	if err != nil {
		slog.Error("failed to update description", "error", err, "camera_id", id)
		http.Error(w, "Failed to update description", http.StatusInternalServerError)
		return
	}

	flash.Success(w, r, "Description updated!")
	http.Redirect(w, r, "/CRW", http.StatusSeeOther)
}

func (h *CameraHandler) renderRegister(w http.ResponseWriter, r *http.Request, edit *model.Camera, messages ...flash.Message) {
	cameras, err := h.cameraService.Cameras(r.Context())
	if err != nil {
		slog.Error("failed to list cameras", "error", err)
		http.Error(w, "Failed to load cameras", http.StatusInternalServerError)
		return
	}

	page := pages.NewPage(w, r)
	page.Flashes = append(page.Flashes, messages...)

	ui.Render(w, r, pages.Register(pages.RegisterData{
		Page:    page,
		Cameras: cameras,
		Edit:    edit,
	}))
}

func photoHeader(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File["photo"]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
