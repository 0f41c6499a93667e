package attachment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FormatNormal is the name of the synthetic format that always exists.
// It stores the file under the bare base name with no suffix.
const FormatNormal = "normal"

// Step is one named processing operation applied to a format's processor,
// with positional arguments.
type Step struct {
	Op   string `yaml:"op"`
	Args []any  `yaml:"args"`
}

// Format describes one stored variant of the attached file. Suffix is
// appended to the base file name before the extension; Steps are applied in
// order through the configured processor before the variant is persisted.
type Format struct {
	Name   string `yaml:"name"`
	Suffix string `yaml:"suffix"`
	Steps  []Step `yaml:"steps"`
}

// ParseFormats decodes a YAML list of formats, so format tables can be kept
// in configuration files:
//
//	- name: thumb
//	  suffix: _thumb
//	  steps:
//	    - op: resize
//	      args: [60, 60]
func ParseFormats(data []byte) ([]Format, error) {
	var formats []Format
	if err := yaml.Unmarshal(data, &formats); err != nil {
		return nil, fmt.Errorf("parse formats: %w", err)
	}
	return formats, nil
}

// buildFormatTable merges the configured formats with the synthetic "normal"
// format and validates them. The returned slice preserves configuration
// order, with "normal" first; lookup matching iterates it in that order.
func buildFormatTable(configured []Format) ([]Format, error) {
	table := []Format{{Name: FormatNormal}}

	for _, f := range configured {
		if f.Name == FormatNormal {
			// Explicit settings override only the fields given.
			if f.Suffix != "" {
				table[0].Suffix = f.Suffix
			}
			if len(f.Steps) > 0 {
				table[0].Steps = f.Steps
			}
			continue
		}
		if f.Name == "" {
			return nil, fmt.Errorf("%w: format with suffix %q", ErrMissingFormatName, f.Suffix)
		}
		if f.Suffix == "" {
			return nil, fmt.Errorf("%w: format %q", ErrEmptySuffix, f.Name)
		}
		table = append(table, f)
	}

	seenNames := make(map[string]bool, len(table))
	seenSuffixes := make(map[string]bool, len(table))
	for _, f := range table {
		if seenNames[f.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFormat, f.Name)
		}
		if seenSuffixes[f.Suffix] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSuffix, f.Suffix)
		}
		seenNames[f.Name] = true
		seenSuffixes[f.Suffix] = true
	}

	return table, nil
}
