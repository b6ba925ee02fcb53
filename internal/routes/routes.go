package routes

import (
	"net/http"

	"github.com/webtech/cameralog/internal/app"
	"github.com/webtech/cameralog/internal/handler"
	"github.com/webtech/cameralog/internal/middleware"
	"github.com/webtech/cameralog/internal/storage"
)

// maxRequestBody caps every request body: a 10 MB photo plus form overhead.
const maxRequestBody = 12 << 20

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	camera := handler.NewCameraHandler(app.CameraService)

	mux := http.NewServeMux()

	// Uploaded photos (S3 serves its own)
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(local.Root()))))
	}

	mux.HandleFunc("GET /healthz", home.Healthz)

	// Login (rate limited)
	rateLimiter := middleware.RateLimitLogin(app.Cfg.LoginRateLimit, app.Cfg.LoginRateWindow, app.Cfg.TrustProxy)

	mux.HandleFunc("GET /{$}", auth.LoginPage)
	mux.HandleFunc("POST /{$}", rateLimiter(auth.Login))
	mux.HandleFunc("GET /logout", auth.Logout)

	// Cameras. Creating is public; editing the submitted id needs a session,
	// checked inside Register.
	mux.HandleFunc("GET /rgstr", camera.RegisterPage)
	mux.HandleFunc("POST /rgstr", camera.Register)
	mux.HandleFunc("GET /edit/{id}", middleware.RequireSession("Login required to edit records")(camera.EditPage))
	mux.HandleFunc("GET /delete/{id}", middleware.RequireSession("Login required to delete records")(camera.Delete))

	// Card view
	mux.HandleFunc("GET /CRW", camera.CardsPage)
	mux.HandleFunc("POST /update_description/{id}", camera.UpdateDescription)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.NonceMiddleware, // Must be before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.BodyLimit(maxRequestBody), // Before CSRF, which parses the form
		middleware.CSRFProtection(app.Cfg.SessionSecret, app.Cfg.IsProduction()),
		middleware.Session(app.AuthService),
		middleware.WithURLPath,
	)

	return handler
}
