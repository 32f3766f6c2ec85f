package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Attachment extensions accepted on report submission.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedFile reports whether filename carries an accepted image extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// StoredFilename returns a safe on-disk name for an uploaded file: the
// base name stripped of path separators and shell-hostile characters,
// prefixed with a random UUID so two uploads of the same name never
// overwrite each other.
func StoredFilename(original string) string {
	base := filepath.Base(original)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return uuid.NewString() + "_" + b.String()
}
