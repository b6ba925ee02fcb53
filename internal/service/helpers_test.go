package service

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/webtech/cameralog/internal/db"
	"github.com/webtech/cameralog/internal/repository"
	"github.com/webtech/cameralog/internal/storage"
)

type testEnv struct {
	repo      repository.CameraRepository
	storage   *storage.LocalStorage
	uploads   *UploadService
	cameras   *CameraService
	staticDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	database, err := db.Init("sqlite", filepath.Join(dir, "cameras.db"), "")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	t.Cleanup(func() { _ = database.Close() })

	staticDir := filepath.Join(dir, "static")
	local, err := storage.NewLocalStorage(staticDir, "/static")
	require.NoError(t, err)

	repo := repository.NewCameraRepository(database)
	uploads := NewUploadService(local)

	return &testEnv{
		repo:      repo,
		storage:   local,
		uploads:   uploads,
		cameras:   NewCameraService(repo, uploads),
		staticDir: staticDir,
	}
}

// fileHeader builds a parsed multipart file header for field "photo".
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(10<<20))

	_, header, err := req.FormFile("photo")
	require.NoError(t, err)
	return header
}
