package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "preview")
	sc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{10, 20, 30, 255})

	path, err := sc.Capture(img)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "preview_2026-01-02_03-04-05.006.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	r, g, b, _ := decoded.At(1, 2).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestCaptureBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	sc := NewScreenshotCapture(filepath.Join(file, "sub"), "preview")
	_, err := sc.Capture(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.Error(t, err)
}

func TestGenerateFilenameWorkingDir(t *testing.T) {
	sc := NewScreenshotCapture("", "shot")
	sc.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }

	assert.Equal(t, "shot_2026-10-19_08-30-00.000.png", sc.GenerateFilename())
}

func TestFlipRows(t *testing.T) {
	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	img, err := FlipRows(pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 1))

	_, err = FlipRows(pixels, 3, 2)
	assert.Error(t, err)
}

func TestCaptureFromPixels(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "preview")

	path, err := sc.CaptureFromPixels(make([]byte, 4*4*4), 4, 4)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
