package attachment

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the per-manager attachment settings.
type Config struct {
	// Attribute is the name of the form field / entity attribute carrying
	// the uploaded source file. Required.
	Attribute string

	// NamingAttributes are the owner entity attributes the base file name is
	// derived from. Defaults to the entity's primary key attributes.
	NamingAttributes []string

	// AttributeSeparator joins the naming attribute values when there is
	// more than one. Defaults to "_".
	AttributeSeparator string

	// AllowedExtensions is a comma-separated list of accepted source
	// extensions, e.g. "jpg,png,gif". Empty means unrestricted. Matching is
	// case-insensitive substring containment against the raw list, so a
	// partial extension that happens to occur in the list is accepted.
	AllowedExtensions string

	// Dir is the storage directory, relative to the root directory in
	// Settings. Required.
	Dir string

	// DefaultName is the stem of an optional static fallback file served
	// when no per-entity file exists for a format.
	DefaultName string

	// Prefix is prepended to every base file name.
	Prefix string

	// Formats lists the variants to store. The "normal" format with an
	// empty suffix always exists and is merged with an explicit entry of
	// that name.
	Formats []Format

	// ForceExtension overrides the stored extension regardless of the
	// source's own extension.
	ForceExtension string

	// CacheBustURL appends a checksum of the file's modification time to
	// generated URLs. Defaults to true; set to disable.
	CacheBustURL *bool
}

func (c Config) cacheBust() bool {
	return c.CacheBustURL == nil || *c.CacheBustURL
}

func (c Config) separator() string {
	if c.AttributeSeparator == "" {
		return "_"
	}
	return c.AttributeSeparator
}

// Settings holds the process-level values shared by all managers: the
// web-servable root directory files live under, and the public base URL
// they are served from.
type Settings struct {
	RootDir string `env:"UPLOAD_ROOT_DIR,required,notEmpty"`
	BaseURL string `env:"UPLOAD_BASE_URL" envDefault:"/"`
}

// LoadSettings reads Settings from the environment, loading a .env file
// first if one exists.
func LoadSettings() (Settings, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}
