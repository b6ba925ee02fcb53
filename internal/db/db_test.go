package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "cameras.db")

	database, err := Init("sqlite", path, "")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestInitSeedsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.db")
	target := filepath.Join(dir, "runtime", "cameras.db")

	seedDB, err := Init("sqlite", seedPath, "")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(seedDB.DB, "sqlite"))
	_, err = seedDB.Exec(`INSERT INTO cameras (CameraBrand, CameraModel, CameraType, email, year_date) VALUES ('Leica', 'M6', 'Film', 'seed@example.com', '1984-01-01')`)
	require.NoError(t, err)
	require.NoError(t, seedDB.Close())

	database, err := Init("sqlite", target, seedPath)
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM cameras`))
	assert.Equal(t, 1, count)
}

func TestInitDoesNotOverwriteExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.db")
	target := filepath.Join(dir, "cameras.db")

	require.NoError(t, os.WriteFile(seedPath, []byte("not a database"), 0644))

	existing, err := Init("sqlite", target, "")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(existing.DB, "sqlite"))
	require.NoError(t, existing.Close())

	database, err := Init("sqlite", target, seedPath)
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	var count int
	assert.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM cameras`))
}

func TestSqlitePath(t *testing.T) {
	tests := []struct {
		connection string
		want       string
	}{
		{"/tmp/cameralite3.db", "/tmp/cameralite3.db"},
		{"./data/app.db?_pragma=foreign_keys(1)", "./data/app.db"},
		{"file:/tmp/x.db?mode=rwc", "/tmp/x.db"},
	}

	for _, tt := range tests {
		t.Run(tt.connection, func(t *testing.T) {
			assert.Equal(t, tt.want, sqlitePath(tt.connection))
		})
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database, err := Init("sqlite", filepath.Join(t.TempDir(), "cameras.db"), "")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	require.NoError(t, RunMigrations(database.DB, "sqlite"))
	_, err = database.Exec(`INSERT INTO cameras (CameraBrand, CameraModel, CameraType, email, year_date, photo) VALUES ('Canon', 'AE-1', 'Film', 'a@example.com', '1990-01-01', 'uploads/ae1.png')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(database.DB, "sqlite"))
	require.NoError(t, EnsureColumns(database.DB))

	var photo string
	require.NoError(t, database.Get(&photo, `SELECT photo FROM cameras WHERE CameraBrand = 'Canon'`))
	assert.Equal(t, "uploads/ae1.png", photo)
}

func TestEnsureColumnsUpgradesLegacyTable(t *testing.T) {
	database, err := Init("sqlite", filepath.Join(t.TempDir(), "legacy.db"), "")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	_, err = database.Exec(`CREATE TABLE cameras (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		CameraBrand TEXT NOT NULL,
		CameraModel TEXT NOT NULL,
		CameraType TEXT NOT NULL,
		email TEXT NOT NULL,
		year_date TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO cameras (CameraBrand, CameraModel, CameraType, email, year_date) VALUES ('Nikon', 'F3', 'Film', 'b@example.com', '1980-05-05')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(database.DB, "sqlite"))

	var row struct {
		Description string  `db:"description"`
		Photo       *string `db:"photo"`
	}
	require.NoError(t, database.Get(&row, `SELECT description, photo FROM cameras WHERE CameraBrand = 'Nikon'`))
	assert.Equal(t, "", row.Description)
	assert.Nil(t, row.Photo)
}

func TestIsDuplicateColumn(t *testing.T) {
	assert.True(t, isDuplicateColumn(errString("SQL logic error: duplicate column name: photo (1)")))
	assert.True(t, isDuplicateColumn(errString(`ERROR: column "photo" of relation "cameras" already exists`)))
	assert.False(t, isDuplicateColumn(errString("no such table: cameras")))
}

type errString string

func (e errString) Error() string { return string(e) }
