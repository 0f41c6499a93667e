package attachment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type match struct {
	format string
	path   string
}

// scan reads the storage directory and returns every entry whose name is
// baseName immediately followed by a configured suffix, a dot and an
// extension. Each entry is assigned to the first format in table order
// whose suffix matches; with colliding suffixes the first one wins, which
// is why suffixes must be mutually distinguishable for deterministic
// results. A missing directory yields no matches, not an error.
func (m *Manager) scan(baseName string) ([]match, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	var matches []match
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if f, ok := m.matchFormat(entry.Name(), baseName); ok {
			matches = append(matches, match{format: f, path: filepath.Join(m.dir, entry.Name())})
		}
	}
	return matches, nil
}

// matchFormat assigns a directory entry to a format, requiring
// baseName + suffix + "." + extension with a non-empty extension that
// passes the allow list when one is configured.
func (m *Manager) matchFormat(name, baseName string) (string, bool) {
	rest, ok := strings.CutPrefix(name, baseName)
	if !ok || rest == "" {
		return "", false
	}
	for _, f := range m.formats {
		tail, ok := strings.CutPrefix(rest, f.Suffix)
		if !ok {
			continue
		}
		ext, ok := strings.CutPrefix(tail, ".")
		if !ok || ext == "" {
			continue
		}
		if m.cfg.AllowedExtensions != "" && !extensionAllowed(m.cfg.AllowedExtensions, ext) {
			continue
		}
		return f.Name, true
	}
	return "", false
}

// Variants maps each format with a stored file for baseName to that file's
// path. When more than one entry matches the same format, the
// lexicographically last one is kept.
func (m *Manager) Variants(baseName string) (map[string]string, error) {
	matches, err := m.scan(baseName)
	if err != nil {
		return nil, err
	}
	variants := make(map[string]string, len(matches))
	for _, mt := range matches {
		variants[mt.format] = mt.path
	}
	return variants, nil
}

// PurgeVariants removes every stored file matching baseName. Purging an
// empty set is a no-op, so the call is idempotent; a file that disappears
// between scan and removal is likewise not an error.
func (m *Manager) PurgeVariants(ctx context.Context, baseName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	matches, err := m.scan(baseName)
	if err != nil {
		return err
	}
	for _, mt := range matches {
		if err := os.Remove(mt.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
		}
	}
	if len(matches) > 0 {
		m.log.DebugContext(ctx, "variants purged",
			slog.String("base_name", baseName), slog.Int("count", len(matches)))
	}
	return nil
}

// findFirst returns the path of the first directory entry named
// stem + "." + extension, or an empty string when none exists. The
// extension allow list applies here the same way it does in matchFormat,
// so URL lookups cannot serve a file the path lookups refuse.
func (m *Manager) findFirst(stem string) (string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		tail, ok := strings.CutPrefix(entry.Name(), stem)
		if !ok {
			continue
		}
		ext, ok := strings.CutPrefix(tail, ".")
		if !ok || ext == "" {
			continue
		}
		if m.cfg.AllowedExtensions != "" && !extensionAllowed(m.cfg.AllowedExtensions, ext) {
			continue
		}
		return filepath.Join(m.dir, entry.Name()), nil
	}
	return "", nil
}
