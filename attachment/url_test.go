package attachment_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userscoders/fileupload/attachment"
)

func boolPtr(b bool) *bool { return &b }

func TestFileURL(t *testing.T) {
	m, _ := newManager(t, attachment.Config{CacheBustURL: boolPtr(false)})
	a := m.For(entityWithID("7"))

	require.NoError(t, a.OnSaved(context.Background(), diskSource(t, "photo.png", []byte("png-bytes"))))

	url, err := a.FileURL("normal")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img/7.png", url)
}

func TestFileURLCacheBust(t *testing.T) {
	m, _ := newManager(t, attachment.Config{})
	a := m.For(entityWithID("7"))

	require.NoError(t, a.OnSaved(context.Background(), diskSource(t, "photo.png", []byte("png-bytes"))))

	url, err := a.FileURL("")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://example.com/img/7.png?_="))

	// The query parameter is a checksum of the modification time, stable
	// while the file is unchanged.
	again, err := a.FileURL("")
	require.NoError(t, err)
	assert.Equal(t, url, again)
}

func TestFileURLDefaultFallback(t *testing.T) {
	m, dir := newManager(t, attachment.Config{
		DefaultName:  "placeholder",
		CacheBustURL: boolPtr(false),
		Formats:      []attachment.Format{{Name: "thumb", Suffix: "_thumb"}},
	})
	a := m.For(entityWithID("7"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "placeholder.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "placeholder_thumb.png"), []byte("x"), 0644))

	url, err := a.FileURL("thumb")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img/placeholder_thumb.png", url)

	url, err = a.FileURL("normal")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img/placeholder.png", url)
}

func TestFileURLPrefersEntityFileOverDefault(t *testing.T) {
	m, dir := newManager(t, attachment.Config{
		DefaultName:  "placeholder",
		CacheBustURL: boolPtr(false),
	})
	a := m.For(entityWithID("7"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "placeholder.png"), []byte("x"), 0644))
	require.NoError(t, a.OnSaved(context.Background(), diskSource(t, "photo.png", []byte("png-bytes"))))

	url, err := a.FileURL("normal")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img/7.png", url)
}

func TestFileURLExtensionFilter(t *testing.T) {
	m, dir := newManager(t, attachment.Config{
		AllowedExtensions: "png,gif",
		CacheBustURL:      boolPtr(false),
	})
	a := m.For(entityWithID("7"))

	// URL lookups apply the allow list the same way path lookups do: a
	// stray disallowed file is never served.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "7.exe"), []byte("x"), 0644))

	_, err := a.FileURL("normal")
	require.ErrorIs(t, err, attachment.ErrFileNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "7.png"), []byte("x"), 0644))

	url, err := a.FileURL("normal")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img/7.png", url)
}

func TestFileURLNotFound(t *testing.T) {
	m, _ := newManager(t, attachment.Config{})
	a := m.For(entityWithID("7"))

	_, err := a.FileURL("normal")
	require.ErrorIs(t, err, attachment.ErrFileNotFound)
}

func TestFileURLUnknownFormat(t *testing.T) {
	m, _ := newManager(t, attachment.Config{})
	a := m.For(entityWithID("7"))

	_, err := a.FileURL("huge")
	require.ErrorIs(t, err, attachment.ErrUnknownFormat)
}

func TestDefaultFileName(t *testing.T) {
	m, _ := newManager(t, attachment.Config{DefaultName: "placeholder", Prefix: "avatar_"})
	assert.Equal(t, "avatar_placeholder", m.For(entityWithID("7")).DefaultFileName())

	m, _ = newManager(t, attachment.Config{})
	assert.Empty(t, m.For(entityWithID("7")).DefaultFileName())
}
