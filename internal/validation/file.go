package validation

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedExtensions map[string]bool
	MaxSize           int64
}

var (
	// ImageConstraints defines validation rules for camera photos
	ImageConstraints = FileConstraints{
		AllowedExtensions: map[string]bool{
			".png":  true,
			".jpg":  true,
			".jpeg": true,
			".gif":  true,
		},
		MaxSize: 10 << 20, // 10MB
	}
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// ValidateFile checks size and extension of an uploaded file.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	if !allowedExtension(header.Filename, constraints) {
		return fmt.Errorf("invalid file extension: %q", filepath.Ext(header.Filename))
	}

	return nil
}

// AllowedImage reports whether filename has a png, jpg, jpeg or gif
// extension, ignoring case.
func AllowedImage(filename string) bool {
	return allowedExtension(filename, ImageConstraints)
}

func allowedExtension(filename string, constraints FileConstraints) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return constraints.AllowedExtensions[ext]
}

// SanitizeFilename returns a flat ASCII filename safe to join onto a storage
// directory. Path separators become word breaks, so "../../evil.png" yields
// "evil.png". The result may be empty.
func SanitizeFilename(name string) string {
	ascii, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isNonASCII))), name)
	if err != nil {
		return ""
	}

	ascii = strings.NewReplacer("/", " ", `\`, " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeFilenameChars.ReplaceAllString(ascii, "")

	return strings.Trim(ascii, "._")
}

func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}
