package attachment

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FileURL builds the public URL for the format's stored file, FormatNormal
// when the name is empty. When no per-entity file exists it falls back to
// the default file if one is configured; ErrFileNotFound when neither
// matches. With cache busting enabled, a checksum of the file's
// modification time is appended as a query parameter so replaced files get
// a fresh URL.
func (a *Attachment) FileURL(format string) (string, error) {
	f, ok := a.m.format(format)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	baseName, err := a.BaseFileName()
	if err != nil {
		return "", err
	}

	file, err := a.m.findFirst(baseName + f.Suffix)
	if err != nil {
		return "", err
	}
	if file == "" && a.m.cfg.DefaultName != "" {
		file, err = a.m.findFirst(a.DefaultFileName() + f.Suffix)
		if err != nil {
			return "", err
		}
	}
	if file == "" {
		return "", fmt.Errorf("%w: format %q for %q", ErrFileNotFound, f.Name, baseName)
	}

	url := strings.TrimSuffix(a.m.settings.BaseURL, "/") + "/" +
		path.Join(filepath.ToSlash(a.m.cfg.Dir), filepath.Base(file))

	if a.m.cfg.cacheBust() {
		info, err := os.Stat(file)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
		}
		url += "?_=" + mtimeChecksum(info.ModTime().UnixNano())
	}
	return url, nil
}

// mtimeChecksum is a fast non-cryptographic checksum of a modification
// time, used only for cache invalidation; collisions are tolerable.
func mtimeChecksum(unixNano int64) string {
	sum := xxhash.Sum64String(strconv.FormatInt(unixNano, 10))
	return strconv.FormatUint(sum, 16)
}
