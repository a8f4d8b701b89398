package ui

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/engine/ui2d"
	"github.com/Faultbox/lipsync-avatar/internal/ingest"
	"github.com/Faultbox/lipsync-avatar/internal/studio"
)

type textDraw struct {
	x, y  float32
	text  string
	color ui2d.Color
}

// textPainter measures text as 7x13 cells and remembers where text went.
type textPainter struct {
	texts []textDraw
}

func (p *textPainter) DrawRect(x, y, width, height float32, color ui2d.Color) {}

func (p *textPainter) DrawRectOutline(x, y, width, height, thickness float32, color ui2d.Color) {}

func (p *textPainter) DrawText(x, y float32, text string, scale float32, color ui2d.Color) {
	p.texts = append(p.texts, textDraw{x, y, text, color})
}

func (p *textPainter) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float32(longest*7) * scale, float32(len(lines)*13) * scale
}

func (p *textPainter) find(text string) (textDraw, bool) {
	for _, d := range p.texts {
		if d.text == text {
			return d, true
		}
	}
	return textDraw{}, false
}

type fakeSpeaker struct {
	state  avatar.PlaybackState
	spoken []string
}

func (f *fakeSpeaker) Generate(text, voiceID string) (uuid.UUID, error) {
	f.spoken = append(f.spoken, text)
	f.state = avatar.Speaking
	return uuid.New(), nil
}

func (f *fakeSpeaker) Stop()                       { f.state = avatar.Idle }
func (f *fakeSpeaker) State() avatar.PlaybackState { return f.state }

type harness struct {
	t       *testing.T
	painter *textPainter
	ctx     *ui2d.Context
	panels  *Panels
	session *studio.Session
	speaker *fakeSpeaker
}

func newHarness(t *testing.T) *harness {
	sp := &fakeSpeaker{}
	s := studio.NewSession(sp, ingest.NewLoader(0), studio.Options{})
	p := &textPainter{}
	ctx := ui2d.NewContext(p)
	return &harness{t: t, painter: p, ctx: ctx, panels: New(ctx, s), session: s, speaker: sp}
}

// frame draws one 1280x720 frame and returns its actions.
func (h *harness) frame() Actions {
	h.painter.texts = h.painter.texts[:0]
	h.ctx.Begin()
	act := h.panels.Draw(1280, 720)
	h.ctx.End()
	return act
}

// click draws a frame to find label, then clicks on it in the next frame.
func (h *harness) click(label string) Actions {
	h.t.Helper()
	h.frame()
	d, ok := h.painter.find(label)
	require.True(h.t, ok, "label %q not drawn", label)

	in := h.ctx.Input()
	in.MouseX, in.MouseY = d.x+1, d.y+1
	in.MouseLeftClicked = true
	return h.frame()
}

func writePNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 4))))
	path := filepath.Join(t.TempDir(), "face.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLayout(t *testing.T) {
	controls, preview := Layout(1280, 720)
	assert.Equal(t, ui2d.Rect{X: 0, Y: 0, W: ControlsWidth, H: 720}, controls)
	assert.Equal(t, ui2d.Rect{X: ControlsWidth, Y: 0, W: 1280 - ControlsWidth, H: 720}, preview)

	controls, preview = Layout(200, 100)
	assert.Equal(t, float32(200), controls.W)
	assert.Zero(t, preview.W)
}

func TestGenerateDisabledWithoutText(t *testing.T) {
	h := newHarness(t)

	h.click("Generate")
	assert.Empty(t, h.speaker.spoken)

	h.session.SetText("hello there")
	h.click("Generate")
	assert.Equal(t, []string{"hello there"}, h.speaker.spoken)
	assert.True(t, h.session.Speaking())

	// Disabled while speaking.
	h.click("Regenerate")
	assert.Len(t, h.speaker.spoken, 1)

	h.click("Stop")
	assert.False(t, h.session.Speaking())

	h.click("Regenerate")
	assert.Equal(t, []string{"hello there", "hello there"}, h.speaker.spoken)
}

func TestExportShowsNotice(t *testing.T) {
	h := newHarness(t)
	h.session.SetText("hi")

	h.click("Export")
	assert.Equal(t, studio.ExportMessage, h.session.Notice())

	h.frame()
	_, ok := h.painter.find(studio.ExportMessage)
	assert.False(t, ok, "notice is wrapped to the panel width")
	found := false
	for _, d := range h.painter.texts {
		if strings.HasPrefix(d.text, "Export to MP4") {
			found = true
			assert.Equal(t, ui2d.ColorWarning, d.color)
		}
	}
	assert.True(t, found)
}

func TestSelectors(t *testing.T) {
	h := newHarness(t)

	h.click("Female")
	assert.Equal(t, avatar.ProceduralFemale, h.session.Kind())

	h.click("Surprised")
	assert.Equal(t, avatar.Surprised, h.session.Emotion())

	h.click("Nova (Female)")
	assert.Equal(t, "nova", h.session.Voice())
}

func TestImageKindNeedsImage(t *testing.T) {
	h := newHarness(t)

	h.click("Image")
	assert.Equal(t, avatar.ProceduralMale, h.session.Kind())

	require.NoError(t, h.session.LoadImage(writePNG(t)))
	assert.Equal(t, avatar.CustomImage, h.session.Kind())

	h.frame()
	_, ok := h.painter.find("face.png (8x4)")
	assert.True(t, ok)

	h.click("Male")
	assert.Equal(t, avatar.ProceduralMale, h.session.Kind())
	h.click("Image")
	assert.Equal(t, avatar.CustomImage, h.session.Kind())

	h.click("Clear")
	assert.Nil(t, h.session.Images().Current())
	assert.Equal(t, avatar.ProceduralMale, h.session.Kind())
}

func TestBrowseAction(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.frame().Browse)
	assert.True(t, h.click("Browse...").Browse)
}

func TestTypingUpdatesCounter(t *testing.T) {
	h := newHarness(t)

	h.frame()
	_, ok := h.painter.find("0/500")
	require.True(t, ok)

	// Focus the text area below the "Text" label, then type.
	label, _ := h.painter.find("Text")
	in := h.ctx.Input()
	in.MouseX, in.MouseY = label.x+20, label.y+60
	in.MouseLeftClicked = true
	h.frame()
	require.True(t, h.ctx.HasFocus())

	in.TextInput = "hey"
	h.frame()
	assert.Equal(t, "hey", h.session.Text())

	h.frame()
	_, ok = h.painter.find("3/500")
	assert.True(t, ok)
}

func TestOverlayStatus(t *testing.T) {
	h := newHarness(t)

	h.frame()
	ready, ok := h.painter.find("Ready")
	require.True(t, ok)
	assert.Greater(t, ready.x, ControlsWidth)
	_, ok = h.painter.find("Emotion: Neutral")
	assert.True(t, ok)

	h.session.SetText("go")
	h.click("Generate")
	h.frame()
	_, ok = h.painter.find("Speaking...")
	assert.True(t, ok)
}
