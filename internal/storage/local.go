package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid storage path")

// LocalStorage keeps files under a root directory on disk.
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage creates root (and its uploads directory) if missing.
func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	err := os.MkdirAll(filepath.Join(root, "uploads"), 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Root returns the directory files are stored in.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) Save(name string, file io.Reader) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(full), 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(out, file)
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	return out.Close()
}

func (s *LocalStorage) Delete(name string) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *LocalStorage) URL(name string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path.Clean("/"+name), "/")
}

// resolve maps a relative storage path to a location inside root.
func (s *LocalStorage) resolve(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", ErrInvalidPath
	}

	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}

	return filepath.Join(s.root, cleaned), nil
}
