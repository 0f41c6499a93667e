package imageproc_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userscoders/fileupload/attachment"
	"github.com/userscoders/fileupload/imageproc"
	"github.com/userscoders/fileupload/upload"
)

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, png.Encode(f, img))
}

func bounds(t *testing.T, path string) (int, int) {
	t.Helper()

	img, err := imaging.Open(path)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestNewUnreadableSource(t *testing.T) {
	_, err := imageproc.New(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, imageproc.ErrFailedToOpenImage)
}

func TestInvokeResizeOps(t *testing.T) {
	tests := []struct {
		op           string
		args         []any
		wantW, wantH int
	}{
		{"resize", []any{60, 60}, 60, 60},
		{"fit", []any{50, 100}, 50, 25},
		{"fill", []any{40, 40}, 40, 40},
		{"crop", []any{30, 20}, 30, 20},
		// Numbers decoded from YAML may arrive as float64.
		{"resize", []any{float64(60), float64(60)}, 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src.png")
			writePNG(t, src, 100, 50)

			p, err := imageproc.New(src)
			require.NoError(t, err)
			require.NoError(t, p.Invoke(tt.op, tt.args...))

			out := filepath.Join(dir, "out.png")
			require.NoError(t, p.Save(out))

			w, h := bounds(t, out)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestInvokeFilterOps(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 10, 10)

	for _, step := range []struct {
		op   string
		args []any
	}{
		{"grayscale", nil},
		{"blur", []any{1.5}},
		{"sharpen", []any{2}},
		{"rotate", []any{90}},
	} {
		p, err := imageproc.New(src)
		require.NoError(t, err)
		require.NoError(t, p.Invoke(step.op, step.args...))

		out := filepath.Join(dir, step.op+".png")
		require.NoError(t, p.Save(out))
		_, err = os.Stat(out)
		assert.NoError(t, err)
	}
}

func TestInvokeUnknownOp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 10, 10)

	p, err := imageproc.New(src)
	require.NoError(t, err)
	require.ErrorIs(t, p.Invoke("sepia"), imageproc.ErrUnknownOp)
}

func TestInvokeBadArgs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 10, 10)

	tests := []struct {
		name string
		op   string
		args []any
	}{
		{"missing args", "resize", nil},
		{"one arg", "resize", []any{60}},
		{"wrong type", "resize", []any{"60", "60"}},
		{"blur wrong type", "blur", []any{"soft"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := imageproc.New(src)
			require.NoError(t, err)
			require.ErrorIs(t, p.Invoke(tt.op, tt.args...), imageproc.ErrBadArgs)
		})
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writePNG(t, src, 10, 10)

	p, err := imageproc.New(src)
	require.NoError(t, err)

	out := filepath.Join(dir, "a", "b", "out.png")
	require.NoError(t, p.Save(out))
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

// End to end through the attachment manager: the thumb format is resized,
// the normal format re-encoded unchanged.
func TestProcessorWithManager(t *testing.T) {
	root := t.TempDir()
	m, err := attachment.New(
		attachment.Settings{RootDir: root, BaseURL: "/"},
		attachment.Config{
			Attribute: "photo",
			Dir:       "img",
			Formats: []attachment.Format{
				{Name: "thumb", Suffix: "_thumb", Steps: []attachment.Step{
					{Op: "resize", Args: []any{60, 60}},
				}},
			},
		},
		attachment.WithProcessorFactory(imageproc.New),
	)
	require.NoError(t, err)

	srcPath := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, srcPath, 120, 80)
	src, err := upload.NewDisk(srcPath)
	require.NoError(t, err)

	a := m.For(attachment.Record{Keys: []string{"id"}, Attrs: map[string]string{"id": "7"}})
	require.NoError(t, a.OnSaved(context.Background(), src))

	w, h := bounds(t, filepath.Join(root, "img", "7.png"))
	assert.Equal(t, 120, w)
	assert.Equal(t, 80, h)

	w, h = bounds(t, filepath.Join(root, "img", "7_thumb.png"))
	assert.Equal(t, 60, w)
	assert.Equal(t, 60, h)
}
