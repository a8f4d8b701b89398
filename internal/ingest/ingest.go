// Package ingest validates and decodes user-supplied avatar images.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes is the default upload size limit.
const DefaultMaxBytes = 10 << 20

// MaxDimension is the largest edge kept after decoding. Larger images are
// scaled down to fit.
const MaxDimension = 2048

// DefaultMaxPixels is the default limit on decoded width*height, checked
// from the image header before any pixels are allocated.
const DefaultMaxPixels = 8192 * 8192

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image file too large")
	ErrEmpty           = errors.New("image file is empty")
)

// Extensions lists accepted file extensions, lower case with the dot.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// formats are the image.Decode format names accepted after sniffing.
var formats = map[string]bool{
	"png": true, "jpeg": true, "gif": true, "webp": true, "bmp": true,
}

// DialogExtensions returns Extensions without dots, for file dialogs.
func DialogExtensions() []string {
	out := make([]string, len(Extensions))
	for i, ext := range Extensions {
		out[i] = strings.TrimPrefix(ext, ".")
	}
	return out
}

// Loader checks and decodes image files.
type Loader struct {
	MaxBytes  int64
	MaxPixels int64
}

// NewLoader creates a loader. A non-positive limit selects DefaultMaxBytes.
// MaxPixels starts at DefaultMaxPixels.
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{MaxBytes: maxBytes, MaxPixels: DefaultMaxPixels}
}

// CheckName rejects names whose extension is not accepted.
func CheckName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, ok := range Extensions {
		if ext == ok {
			return nil
		}
	}
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
}

// LoadFile validates and decodes the file at path.
func (l *Loader) LoadFile(path string) (*Handle, error) {
	if err := CheckName(path); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedType, filepath.Base(path))
	}
	if err := l.checkSize(info.Size()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return l.Decode(filepath.Base(path), data)
}

// Decode validates name and data and decodes the image.
func (l *Loader) Decode(name string, data []byte) (*Handle, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if err := l.checkSize(int64(len(data))); err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if !formats[format] {
		return nil, fmt.Errorf("%w: %s content", ErrUnsupportedType, format)
	}
	if err := l.checkPixels(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return &Handle{
		name:   name,
		format: format,
		img:    toRGBA(img),
	}, nil
}

func (l *Loader) checkSize(n int64) error {
	if n == 0 {
		return ErrEmpty
	}
	if n > l.MaxBytes {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, n, l.MaxBytes)
	}
	return nil
}

func (l *Loader) checkPixels(w, h int) error {
	limit := l.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmpty, w, h)
	}
	if int64(w)*int64(h) > limit {
		return fmt.Errorf("%w: %dx%d pixels, limit is %d", ErrTooLarge, w, h, limit)
	}
	return nil
}

// toRGBA converts img to a zero-origin RGBA, scaling it down if an edge
// exceeds MaxDimension.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxDimension || h > MaxDimension {
		if w >= h {
			h = max(1, h*MaxDimension/w)
			w = MaxDimension
		} else {
			w = max(1, w*MaxDimension/h)
			h = MaxDimension
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Handle owns one decoded image. After Release the pixels are dropped.
type Handle struct {
	name   string
	format string

	mu       sync.Mutex
	img      *image.RGBA
	released bool
}

// Name returns the source file name.
func (h *Handle) Name() string { return h.name }

// Format returns the decoded format name (png, jpeg, ...).
func (h *Handle) Format() string { return h.format }

// Image returns the pixels, or nil once released.
func (h *Handle) Image() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.img
}

// Size returns the pixel dimensions, or zero once released.
func (h *Handle) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.img == nil {
		return 0, 0
	}
	return h.img.Rect.Dx(), h.img.Rect.Dy()
}

// Released reports whether Release was called.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Release drops the pixels. Safe to call more than once.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released = true
	h.img = nil
}

// Store holds the current custom image. Replacing or clearing it releases
// the previous handle.
type Store struct {
	mu      sync.Mutex
	current *Handle
	gen     uint64
}

// Replace makes h current and releases the previous handle.
func (s *Store) Replace(h *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == h {
		return
	}
	if s.current != nil {
		s.current.Release()
	}
	s.current = h
	s.gen++
}

// Current returns the current handle, or nil.
func (s *Store) Current() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Generation increases every time the current handle changes.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Clear releases the current handle.
func (s *Store) Clear() {
	s.Replace(nil)
}

// Close releases the current handle.
func (s *Store) Close() {
	s.Clear()
}
