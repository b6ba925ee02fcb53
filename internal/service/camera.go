package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/webtech/cameralog/internal/model"
	"github.com/webtech/cameralog/internal/repository"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
)

// CameraInput is the register/edit form. ID is zero for a new camera.
type CameraInput struct {
	ID    int64
	Brand string `validate:"required"`
	Model string `validate:"required"`
	Type  string `validate:"required"`
	Email string `validate:"required"`
	Date  string `validate:"required,datetime=2006-01-02"`
}

type CameraService struct {
	repo     repository.CameraRepository
	uploads  *UploadService
	validate *validator.Validate
}

func NewCameraService(repo repository.CameraRepository, uploads *UploadService) *CameraService {
	return &CameraService{
		repo:     repo,
		uploads:  uploads,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate trims the input in place and checks it. Missing fields are
// reported before a malformed date.
func (s *CameraService) Validate(input *CameraInput) error {
	input.Brand = strings.TrimSpace(input.Brand)
	input.Model = strings.TrimSpace(input.Model)
	input.Type = strings.TrimSpace(input.Type)
	input.Email = strings.TrimSpace(input.Email)
	input.Date = strings.TrimSpace(input.Date)

	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate camera: %w", err)
	}

	for _, fieldErr := range validationErrors {
		if fieldErr.Tag() == "required" {
			return ErrMissingFields
		}
	}

	return ErrInvalidDate
}

func (s *CameraService) Cameras(ctx context.Context) ([]*model.Camera, error) {
	cameras, err := s.repo.Cameras(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cameras: %w", err)
	}

	for _, camera := range cameras {
		s.withPhotoURL(camera)
	}

	return cameras, nil
}

func (s *CameraService) ByID(ctx context.Context, id int64) (*model.Camera, error) {
	camera, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withPhotoURL(camera), nil
}

// Create validates the input, stores the optional photo and inserts the camera.
// Nothing is written when validation fails.
func (s *CameraService) Create(ctx context.Context, input CameraInput, photo *multipart.FileHeader) (*model.Camera, error) {
	err := s.Validate(&input)
	if err != nil {
		return nil, err
	}

	photoPath, err := s.uploads.SavePhoto(photo)
	if err != nil {
		return nil, err
	}

	camera := &model.Camera{
		Brand: input.Brand,
		Model: input.Model,
		Type:  input.Type,
		Email: input.Email,
		Date:  input.Date,
		Photo: photoPath,
	}

	err = s.repo.Create(ctx, camera)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	return s.withPhotoURL(camera), nil
}

// Update overwrites the camera's fields. The stored photo is replaced only
// when a new valid photo is uploaded.
func (s *CameraService) Update(ctx context.Context, input CameraInput, photo *multipart.FileHeader) error {
	err := s.Validate(&input)
	if err != nil {
		return err
	}

	photoPath, err := s.uploads.SavePhoto(photo)
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, &model.Camera{
		ID:    input.ID,
		Brand: input.Brand,
		Model: input.Model,
		Type:  input.Type,
		Email: input.Email,
		Date:  input.Date,
		Photo: photoPath,
	})
	if err != nil {
		if errors.Is(err, repository.ErrCameraNotFound) {
			return err
		}
		return fmt.Errorf("failed to update camera: %w", err)
	}

	return nil
}

func (s *CameraService) UpdateDescription(ctx context.Context, id int64, description string) error {
	err := s.repo.UpdateDescription(ctx, id, description)
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}
	return nil
}

// Delete removes the camera row. Its photo file is left in storage.
func (s *CameraService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete camera: %w", err)
	}
	return nil
}

func (s *CameraService) withPhotoURL(camera *model.Camera) *model.Camera {
	camera.PhotoURL = s.uploads.URL(camera.Photo)
	return camera
}
