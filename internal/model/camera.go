package model

// Camera is one inventory entry. Email and Date double as the login
// credential pair; nothing keeps the pair unique.
type Camera struct {
	ID          int64   `db:"id"`
	Brand       string  `db:"brand"`
	Model       string  `db:"model"`
	Type        string  `db:"camera_type"`
	Email       string  `db:"email"`
	Date        string  `db:"year_date"` // YYYY-MM-DD
	Description string  `db:"description"`
	Photo       *string `db:"photo"` // Relative path (uploads/<name>), nil when no photo

	// Computed fields (not in database)
	PhotoURL string `db:"-"`
}

func (c *Camera) HasPhoto() bool {
	return c.Photo != nil && *c.Photo != ""
}
