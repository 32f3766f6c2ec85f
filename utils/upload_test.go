package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("photo.jpg"))
	assert.True(t, AllowedFile("photo.JPEG"))
	assert.True(t, AllowedFile("scene.png"))
	assert.True(t, AllowedFile("clip.gif"))

	assert.False(t, AllowedFile("payload.exe"))
	assert.False(t, AllowedFile("notes.txt"))
	assert.False(t, AllowedFile("noextension"))
	assert.False(t, AllowedFile(""))
}

func TestStoredFilename(t *testing.T) {
	name := StoredFilename("../../etc/passwd photo.jpg")
	assert.False(t, strings.Contains(name, "/"))
	assert.False(t, strings.Contains(name, " "))
	assert.True(t, strings.HasSuffix(name, "photo.jpg"))

	// Two uploads of the same original name never collide.
	a := StoredFilename("photo.jpg")
	b := StoredFilename("photo.jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_photo.jpg"))
}
