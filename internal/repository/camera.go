package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/webtech/cameralog/internal/model"
)

var (
	ErrCameraNotFound = errors.New("camera not found")
)

// cameraColumns lists columns explicitly. The brand/model/type columns keep
// the names databases created by earlier versions of the app use
// (CameraBrand, CameraModel, CameraType); description may be NULL on rows
// written before the column had a default.
const cameraColumns = `id, CameraBrand AS brand, CameraModel AS model, CameraType AS camera_type, email, year_date, COALESCE(description, '') AS description, photo`

type CameraRepository interface {
	ByCredential(ctx context.Context, email, date string) (*model.Camera, error)
	ByID(ctx context.Context, id int64) (*model.Camera, error)
	Cameras(ctx context.Context) ([]*model.Camera, error)
	Create(ctx context.Context, camera *model.Camera) error
	Update(ctx context.Context, camera *model.Camera) error
	UpdateDescription(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) error
}

type cameraRepository struct {
	db *sqlx.DB
}

func NewCameraRepository(db *sqlx.DB) CameraRepository {
	return &cameraRepository{db: db}
}

// ByCredential returns the first camera (lowest id) matching the pair.
// Several rows may share a pair; the rest are never considered.
func (r *cameraRepository) ByCredential(ctx context.Context, email, date string) (*model.Camera, error) {
	camera := &model.Camera{}
	query := `SELECT ` + cameraColumns + ` FROM cameras WHERE email = $1 AND year_date = $2 ORDER BY id LIMIT 1`

	err := r.db.GetContext(ctx, camera, query, email, date)
	if err == sql.ErrNoRows {
		return nil, ErrCameraNotFound
	}
	if err != nil {
		return nil, err
	}

	return camera, nil
}

func (r *cameraRepository) ByID(ctx context.Context, id int64) (*model.Camera, error) {
	camera := &model.Camera{}
	query := `SELECT ` + cameraColumns + ` FROM cameras WHERE id = $1`

	err := r.db.GetContext(ctx, camera, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCameraNotFound
	}
	if err != nil {
		return nil, err
	}

	return camera, nil
}

func (r *cameraRepository) Cameras(ctx context.Context) ([]*model.Camera, error) {
	cameras := []*model.Camera{}
	query := `SELECT ` + cameraColumns + ` FROM cameras ORDER BY id ASC`

	err := r.db.SelectContext(ctx, &cameras, query)
	if err != nil {
		return nil, err
	}

	return cameras, nil
}

func (r *cameraRepository) Create(ctx context.Context, camera *model.Camera) error {
	query := `INSERT INTO cameras (CameraBrand, CameraModel, CameraType, email, year_date, description, photo)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	return r.db.QueryRowxContext(ctx, query,
		camera.Brand,
		camera.Model,
		camera.Type,
		camera.Email,
		camera.Date,
		camera.Description,
		camera.Photo,
	).Scan(&camera.ID)
}

// Update overwrites every editable field. Photo is only written when set, so
// an edit without a new upload keeps the stored photo.
func (r *cameraRepository) Update(ctx context.Context, camera *model.Camera) error {
	var (
		result sql.Result
		err    error
	)

	if camera.Photo != nil {
		result, err = r.db.ExecContext(ctx, `UPDATE cameras
		          SET CameraBrand = $1, CameraModel = $2, CameraType = $3, email = $4, year_date = $5, photo = $6
		          WHERE id = $7`,
			camera.Brand,
			camera.Model,
			camera.Type,
			camera.Email,
			camera.Date,
			camera.Photo,
			camera.ID,
		)
	} else {
		result, err = r.db.ExecContext(ctx, `UPDATE cameras
		          SET CameraBrand = $1, CameraModel = $2, CameraType = $3, email = $4, year_date = $5
		          WHERE id = $6`,
			camera.Brand,
			camera.Model,
			camera.Type,
			camera.Email,
			camera.Date,
			camera.ID,
		)
	}

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCameraNotFound
	}

	return nil
}

func (r *cameraRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	query := `UPDATE cameras SET description = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, description, id)
	return err
}

// Delete removes the camera. Deleting an id that does not exist is not an error.
func (r *cameraRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cameras WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
