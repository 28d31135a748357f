// Package storage handles receipt upload intake: extension gating, unique
// naming, persistence to the upload directory and best-effort cleanup.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gastozero/backend/constants"
)

// InvalidFileTypeError rejects an upload whose extension is outside the
// allow-list. The boundary layer turns it into a client-facing 400.
type InvalidFileTypeError struct {
	Filename string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("file type not allowed for %q; use: %s", e.Filename, strings.Join(allowedList(), ", "))
}

func allowedList() []string {
	exts := make([]string, 0, len(constants.AllowedExtensions))
	for ext := range constants.AllowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LocalStore writes uploads to a local directory. The directory is
// append-only from the pipeline's perspective; names are unique per
// user+timestamp. Two uploads by the same user with the same original name
// within the same second can collide — a documented limitation, kept rather
// than silently changing the filename contract.
type LocalStore struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

func NewLocalStore(dir string, logger *slog.Logger) *LocalStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{dir: dir, log: logger, now: time.Now}
}

// SaveUpload validates the extension, ensures the upload directory exists and
// writes the file under "{userID}_{yyyyMMdd_HHmmss}_{sanitizedName}". Nothing
// is written when validation fails. Ownership of the file after a successful
// pipeline run belongs to the caller.
func (s *LocalStore) SaveUpload(r io.Reader, originalName string, userID uint) (absPath, uniqueName string, err error) {
	if originalName == "" || !constants.AllowedExt(filepath.Ext(originalName)) {
		return "", "", &InvalidFileTypeError{Filename: originalName}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	uniqueName = fmt.Sprintf("%d_%s_%s", userID, s.now().Format("20060102_150405"), sanitizeFilename(originalName))
	path := filepath.Join(s.dir, uniqueName)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("close upload file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("resolve upload path: %w", err)
	}

	s.log.Info("storage.upload_saved", "name", uniqueName, "user_id", userID)
	return abs, uniqueName, nil
}

// Delete removes a stored upload, best effort. A missing file returns false
// and is logged; deletion never raises into the error-handling path that
// invoked it.
func (s *LocalStore) Delete(path string) bool {
	err := os.Remove(path)
	switch {
	case err == nil:
		s.log.Info("storage.upload_deleted", "path", path)
		return true
	case os.IsNotExist(err):
		s.log.Debug("storage.delete_missing", "path", path)
		return false
	default:
		s.log.Warn("storage.delete_failed", "path", path, "error", err)
		return false
	}
}

// sanitizeFilename strips path components and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func sanitizeFilename(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
