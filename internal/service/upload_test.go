package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_SavePhoto(t *testing.T) {
	env := newTestEnv(t)

	photo, err := env.uploads.SavePhoto(fileHeader(t, "ae1.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, "uploads/ae1.PNG", *photo)

	data, err := os.ReadFile(filepath.Join(env.staticDir, "uploads", "ae1.PNG"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUploadService_SkipsWithoutError(t *testing.T) {
	env := newTestEnv(t)

	t.Run("no file", func(t *testing.T) {
		photo, err := env.uploads.SavePhoto(nil)
		assert.NoError(t, err)
		assert.Nil(t, photo)
	})

	t.Run("disallowed extension", func(t *testing.T) {
		photo, err := env.uploads.SavePhoto(fileHeader(t, "notes.txt", []byte("hello")))
		assert.NoError(t, err)
		assert.Nil(t, photo)

		_, statErr := os.Stat(filepath.Join(env.staticDir, "uploads", "notes.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("unusable sanitized name", func(t *testing.T) {
		header := fileHeader(t, "x.png", []byte("x"))
		header.Filename = "../.png"

		photo, err := env.uploads.SavePhoto(header)
		assert.NoError(t, err)
		assert.Nil(t, photo)
	})
}

func TestUploadService_SanitizesTraversal(t *testing.T) {
	env := newTestEnv(t)

	header := fileHeader(t, "evil.png", []byte("evil"))
	header.Filename = "../../evil.png"

	photo, err := env.uploads.SavePhoto(header)
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, "uploads/evil.png", *photo)

	_, err = os.Stat(filepath.Join(env.staticDir, "uploads", "evil.png"))
	assert.NoError(t, err)

	// Nothing escaped the static directory.
	_, err = os.Stat(filepath.Join(filepath.Dir(env.staticDir), "evil.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadService_SameNameOverwrites(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uploads.SavePhoto(fileHeader(t, "shot.jpg", []byte("first")))
	require.NoError(t, err)
	_, err = env.uploads.SavePhoto(fileHeader(t, "shot.jpg", []byte("second")))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.staticDir, "uploads", "shot.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestUploadService_URL(t *testing.T) {
	env := newTestEnv(t)

	photo := "uploads/ae1.png"
	assert.Equal(t, "/static/uploads/ae1.png", env.uploads.URL(&photo))
	assert.Equal(t, "", env.uploads.URL(nil))
}
