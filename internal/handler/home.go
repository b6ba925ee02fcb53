package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/webtech/cameralog/internal/ui"
	"github.com/webtech/cameralog/internal/ui/pages"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HomeHandler struct {
	db Pinger
}

func NewHomeHandler(db Pinger) *HomeHandler {
	return &HomeHandler{
		db: db,
	}
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	notFound(w, r)
}

func (h *HomeHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(pages.NewPage(w, r)))
}

// pathID parses the {id} path segment. Anything but a positive integer
// is reported as not found.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
