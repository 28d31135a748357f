package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	s := NewLocalStore(dir, nil)
	s.now = func() time.Time {
		return time.Date(2025, 3, 15, 10, 15, 0, 0, time.UTC)
	}
	return s, dir
}

func TestSaveUpload(t *testing.T) {
	s, dir := newTestStore(t)

	abs, name, err := s.SaveUpload(strings.NewReader("fake image bytes"), "cupom fiscal.jpg", 7)
	require.NoError(t, err)

	assert.Equal(t, "7_20250315_101500_cupom_fiscal.jpg", name)
	assert.True(t, filepath.IsAbs(abs))

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestSaveUploadNameFormat(t *testing.T) {
	s, _ := newTestStore(t)

	_, name, err := s.SaveUpload(strings.NewReader("x"), "nota@fiscal#loja.png", 42)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^42_\d{8}_\d{6}_[A-Za-z0-9._-]+$`)
	assert.Regexp(t, pattern, name)
	assert.Equal(t, "42_20250315_101500_nota_fiscal_loja.png", name)
}

func TestSaveUploadRejectsDisallowedTypes(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"executable", "malware.exe"},
		{"text file", "notes.txt"},
		{"no extension", "cupom"},
		{"empty name", ""},
		{"gif", "anim.gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dir := newTestStore(t)

			_, _, err := s.SaveUpload(strings.NewReader("x"), tt.filename, 1)
			require.Error(t, err)

			var typeErr *InvalidFileTypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, tt.filename, typeErr.Filename)

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "nothing may be written for a rejected type")
		})
	}
}

func TestSaveUploadAcceptsAllowedTypes(t *testing.T) {
	for _, filename := range []string{"a.png", "b.jpg", "c.jpeg", "d.pdf", "e.JPG", "f.PDF"} {
		s, _ := newTestStore(t)
		_, _, err := s.SaveUpload(strings.NewReader("x"), filename, 1)
		assert.NoError(t, err, "filename %s", filename)
	}
}

func TestSaveUploadStripsPathComponents(t *testing.T) {
	s, dir := newTestStore(t)

	_, name, err := s.SaveUpload(strings.NewReader("x"), "../../etc/passwd.jpg", 1)
	require.NoError(t, err)
	assert.Equal(t, "1_20250315_101500_passwd.jpg", name)

	_, statErr := os.Stat(filepath.Join(dir, name))
	assert.NoError(t, statErr)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)

	abs, _, err := s.SaveUpload(strings.NewReader("x"), "cupom.jpg", 1)
	require.NoError(t, err)

	assert.True(t, s.Delete(abs))
	_, statErr := os.Stat(abs)
	assert.True(t, os.IsNotExist(statErr))

	assert.False(t, s.Delete(abs), "second delete reports the file as already gone")
}

func TestDeleteMissingFile(t *testing.T) {
	s, dir := newTestStore(t)
	assert.False(t, s.Delete(filepath.Join(dir, "never_existed.jpg")))
}
