package attachment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/userscoders/fileupload/upload"
)

// Manager owns the naming scheme and format table for one attachment
// configuration. It is validated eagerly at construction and immutable
// afterwards. Bind it to an owner entity with For to operate on that
// entity's files.
type Manager struct {
	settings Settings
	cfg      Config
	formats  []Format
	dir      string // absolute storage directory
	factory  ProcessorFactory
	log      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithProcessorFactory sets the factory used to create a per-format
// processor. Without a factory, variants are written as plain copies of the
// source.
func WithProcessorFactory(f ProcessorFactory) Option {
	return func(m *Manager) {
		m.factory = f
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// New creates a Manager. The configuration is validated here: a missing
// upload attribute or storage directory and malformed format tables are
// construction errors, not deferred to first use. The storage directory is
// created if it does not exist and must resolve inside the root directory.
func New(settings Settings, cfg Config, opts ...Option) (*Manager, error) {
	if cfg.Attribute == "" {
		return nil, ErrMissingAttribute
	}
	if cfg.Dir == "" {
		return nil, ErrMissingDir
	}
	if settings.RootDir == "" {
		return nil, ErrMissingDir
	}

	formats, err := buildFormatTable(cfg.Formats)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(settings.RootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	dir := filepath.Join(root, filepath.FromSlash(cfg.Dir))
	if dir != root && !strings.HasPrefix(dir, root+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDir, cfg.Dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	m := &Manager{
		settings: settings,
		cfg:      cfg,
		formats:  formats,
		dir:      dir,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Formats returns the format table in iteration order, "normal" first.
func (m *Manager) Formats() []Format {
	out := make([]Format, len(m.formats))
	copy(out, m.formats)
	return out
}

func (m *Manager) format(name string) (Format, bool) {
	if name == "" {
		name = FormatNormal
	}
	for _, f := range m.formats {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}

// For binds the Manager to one owner entity, returning the handle the
// lifecycle hooks and lookups operate on.
func (m *Manager) For(e Entity) *Attachment {
	return &Attachment{m: m, entity: e}
}

// Attachment is a Manager bound to one owner entity. Not safe for
// concurrent use; callers serialize saves and deletes for a given owner.
type Attachment struct {
	m        *Manager
	entity   Entity
	source   upload.Upload
	baseName string // memoized after first successful resolution
}

// SetSource pre-assigns the uploaded source file. A pre-assigned source
// takes precedence over anything a resolver would fetch.
func (a *Attachment) SetSource(src upload.Upload) {
	a.source = src
}

// BaseFileName derives the file name stem from the owner's naming
// attributes, joined with the separator and prefixed. It fails with
// ErrUnresolvedIdentity while any naming attribute is still empty, e.g.
// before an insert has assigned the primary key, and memoizes the value
// after the first successful resolution.
func (a *Attachment) BaseFileName() (string, error) {
	if a.baseName != "" {
		return a.baseName, nil
	}

	attrs := a.m.cfg.NamingAttributes
	if len(attrs) == 0 {
		attrs = a.entity.PrimaryKey()
	}
	if len(attrs) == 0 {
		return "", fmt.Errorf("%w: no naming attributes", ErrUnresolvedIdentity)
	}

	values := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		v := a.entity.AttributeValue(attr)
		if v == "" {
			return "", fmt.Errorf("%w: attribute %q is empty", ErrUnresolvedIdentity, attr)
		}
		values = append(values, v)
	}

	a.baseName = a.m.cfg.Prefix + strings.Join(values, a.m.cfg.separator())
	return a.baseName, nil
}

// DefaultFileName returns the stem of the static fallback file, or an empty
// string when no default is configured.
func (a *Attachment) DefaultFileName() string {
	if a.m.cfg.DefaultName == "" {
		return ""
	}
	return a.m.cfg.Prefix + a.m.cfg.DefaultName
}

// OnSaved is the after-insert / after-update hook. A pre-assigned source
// wins over the src argument. Without any source the call is a no-op, and a
// source whose extension fails the allow-list is silently skipped with the
// stored files left untouched, as is a source resolving to no extension at
// all: a stored name ending in a bare dot would be invisible to the variant
// scan and could never be purged. With a valid source, all existing
// variants for the current identity are purged and the configured formats
// written.
func (a *Attachment) OnSaved(ctx context.Context, src upload.Upload) error {
	if a.source != nil {
		src = a.source
	}
	if src == nil {
		return nil
	}

	if !extensionAllowed(a.m.cfg.AllowedExtensions, src.Extension()) {
		a.m.log.DebugContext(ctx, "upload skipped: extension not allowed",
			slog.String("extension", src.Extension()),
			slog.String("allowed", a.m.cfg.AllowedExtensions))
		return nil
	}
	if a.m.resolvedExtension(src) == "" {
		a.m.log.DebugContext(ctx, "upload skipped: source has no extension")
		return nil
	}

	baseName, err := a.BaseFileName()
	if err != nil {
		return err
	}

	if err := a.m.PurgeVariants(ctx, baseName); err != nil {
		return err
	}
	return a.m.writeVariants(ctx, baseName, src)
}

// OnSavedFrom resolves the upload bound to the configured attribute from
// the request/form layer, then behaves like OnSaved. A missing upload is a
// no-op.
func (a *Attachment) OnSavedFrom(ctx context.Context, res upload.Resolver) error {
	var src upload.Upload
	if a.source == nil && res != nil {
		u, err := res.Resolve(a.m.cfg.Attribute)
		if err != nil {
			return err
		}
		src = u
	}
	return a.OnSaved(ctx, src)
}

// OnDeleted is the after-delete hook: it purges every stored file matching
// the owner's current identity. Files written under a previous identity, if
// the naming attributes were mutated since, are not targeted.
func (a *Attachment) OnDeleted(ctx context.Context) error {
	baseName, err := a.BaseFileName()
	if err != nil {
		return err
	}
	return a.m.PurgeVariants(ctx, baseName)
}

// DeleteFiles removes the owner's stored files outside the delete
// lifecycle. Identical to OnDeleted; provided for manual purges.
func (a *Attachment) DeleteFiles(ctx context.Context) error {
	return a.OnDeleted(ctx)
}

// FilePath returns the stored file path for the format, FormatNormal when
// the name is empty. ErrUnknownFormat for a format not in the table,
// ErrFileNotFound when no stored file matches.
func (a *Attachment) FilePath(format string) (string, error) {
	f, ok := a.m.format(format)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	baseName, err := a.BaseFileName()
	if err != nil {
		return "", err
	}

	variants, err := a.m.Variants(baseName)
	if err != nil {
		return "", err
	}
	path, ok := variants[f.Name]
	if !ok {
		return "", fmt.Errorf("%w: format %q for %q", ErrFileNotFound, f.Name, baseName)
	}
	return path, nil
}

// FilePaths returns every stored variant for the owner's current identity,
// keyed by format name.
func (a *Attachment) FilePaths() (map[string]string, error) {
	baseName, err := a.BaseFileName()
	if err != nil {
		return nil, err
	}
	return a.m.Variants(baseName)
}

// writeVariants writes one stored file per configured format. The stored
// extension is ForceExtension when set, else the source's own extension
// lower-cased. With a single format and no processor the source is copied
// straight to the bare base name. With a processor, each format gets a
// fresh processor over the original source, its steps applied in order, and
// the result persisted; a failing format is skipped without rolling back
// formats already written, and the collected failures are returned. With
// multiple formats and no processor each format receives a plain copy.
func (m *Manager) writeVariants(ctx context.Context, baseName string, src upload.Upload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ext := m.resolvedExtension(src)

	if len(m.formats) == 1 && m.factory == nil {
		dst := m.variantPath(baseName, m.formats[0], ext)
		if err := src.SaveAs(dst); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
		}
		m.log.DebugContext(ctx, "stored file written", slog.String("path", dst))
		return nil
	}

	if m.factory == nil {
		for _, f := range m.formats {
			if err := ctx.Err(); err != nil {
				return err
			}
			dst := m.variantPath(baseName, f, ext)
			if err := src.SaveAs(dst); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
			}
			m.log.DebugContext(ctx, "stored file written", slog.String("path", dst))
		}
		return nil
	}

	srcPath, err := src.TempPath()
	if err != nil {
		return err
	}
	// A source materialized to a temp file just for processing is removed
	// again once every format has been handled.
	defer func() {
		if c, ok := src.(upload.Cleaner); ok {
			_ = c.Cleanup()
		}
	}()

	var errs []error
	for _, f := range m.formats {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := m.writeProcessed(srcPath, baseName, f, ext); err != nil {
			errs = append(errs, err)
			m.log.ErrorContext(ctx, "format write failed",
				slog.String("format", f.Name), slog.Any("error", err))
			continue
		}
		m.log.DebugContext(ctx, "stored file written",
			slog.String("format", f.Name),
			slog.String("path", m.variantPath(baseName, f, ext)))
	}
	return errors.Join(errs...)
}

func (m *Manager) writeProcessed(srcPath, baseName string, f Format, ext string) error {
	p, err := m.factory(srcPath)
	if err != nil {
		return fmt.Errorf("%w: format %q: %v", ErrProcessingFailed, f.Name, err)
	}
	for _, step := range f.Steps {
		if err := p.Invoke(step.Op, step.Args...); err != nil {
			return fmt.Errorf("%w: format %q, step %q: %v", ErrProcessingFailed, f.Name, step.Op, err)
		}
	}
	if err := p.Save(m.variantPath(baseName, f, ext)); err != nil {
		return fmt.Errorf("%w: format %q: %v", ErrProcessingFailed, f.Name, err)
	}
	return nil
}

// resolvedExtension is the extension a stored file gets: ForceExtension
// when configured, else the source's own extension lower-cased. Empty when
// neither yields one.
func (m *Manager) resolvedExtension(src upload.Upload) string {
	if m.cfg.ForceExtension != "" {
		return m.cfg.ForceExtension
	}
	return strings.ToLower(src.Extension())
}

func (m *Manager) variantPath(baseName string, f Format, ext string) string {
	return filepath.Join(m.dir, baseName+f.Suffix+"."+ext)
}

// extensionAllowed reports whether ext passes the comma-separated allow
// list. An empty list allows everything. Matching is case-insensitive
// substring containment against the raw list, so partial extensions that
// occur inside a listed one are accepted as well.
func extensionAllowed(allowList, ext string) bool {
	if allowList == "" {
		return true
	}
	return strings.Contains(strings.ToLower(allowList), strings.ToLower(ext))
}
