package attachment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userscoders/fileupload/attachment"
)

func TestFormatTableAlwaysContainsNormal(t *testing.T) {
	m, _ := newManager(t, attachment.Config{})

	formats := m.Formats()
	require.Len(t, formats, 1)
	assert.Equal(t, attachment.FormatNormal, formats[0].Name)
	assert.Empty(t, formats[0].Suffix)
}

func TestFormatTableOrder(t *testing.T) {
	m, _ := newManager(t, attachment.Config{
		Formats: []attachment.Format{
			{Name: "thumb", Suffix: "_thumb"},
			{Name: "large", Suffix: "_large"},
		},
	})

	formats := m.Formats()
	require.Len(t, formats, 3)
	assert.Equal(t, "normal", formats[0].Name)
	assert.Equal(t, "thumb", formats[1].Name)
	assert.Equal(t, "large", formats[2].Name)
}

func TestFormatTableMergesExplicitNormal(t *testing.T) {
	steps := []attachment.Step{{Op: "fit", Args: []any{800, 600}}}
	m, _ := newManager(t, attachment.Config{
		Formats: []attachment.Format{{Name: "normal", Steps: steps}},
	})

	formats := m.Formats()
	require.Len(t, formats, 1)
	// Explicit settings override only the fields given: the suffix stays
	// empty, the steps are taken over.
	assert.Empty(t, formats[0].Suffix)
	assert.Equal(t, steps, formats[0].Steps)
}

func TestParseFormats(t *testing.T) {
	data := []byte(`
- name: thumb
  suffix: _thumb
  steps:
    - op: resize
      args: [60, 60]
- name: banner
  suffix: _banner
  steps:
    - op: fill
      args: [1200, 300]
    - op: grayscale
`)

	formats, err := attachment.ParseFormats(data)
	require.NoError(t, err)
	require.Len(t, formats, 2)

	assert.Equal(t, "thumb", formats[0].Name)
	assert.Equal(t, "_thumb", formats[0].Suffix)
	require.Len(t, formats[0].Steps, 1)
	assert.Equal(t, "resize", formats[0].Steps[0].Op)
	assert.Equal(t, []any{60, 60}, formats[0].Steps[0].Args)

	assert.Equal(t, "banner", formats[1].Name)
	require.Len(t, formats[1].Steps, 2)
	assert.Equal(t, "grayscale", formats[1].Steps[1].Op)
}

func TestParseFormatsInvalid(t *testing.T) {
	_, err := attachment.ParseFormats([]byte("not: [valid"))
	require.Error(t, err)
}
