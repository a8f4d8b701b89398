// Package ui draws the studio panels with ui2d.
package ui

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/engine/ui2d"
	"github.com/Faultbox/lipsync-avatar/internal/logger"
	"github.com/Faultbox/lipsync-avatar/internal/speech"
	"github.com/Faultbox/lipsync-avatar/internal/studio"
)

const (
	// ControlsWidth is the width of the left control panel in points.
	ControlsWidth = float32(340)

	textAreaHeight = float32(120)
	overlayWidth   = float32(190)
	overlayHeight  = float32(84)
	overlayMargin  = float32(10)
)

// Actions are requests the panels cannot serve themselves.
type Actions struct {
	Browse bool
}

// Panels draws the control panel and the preview overlay.
type Panels struct {
	ctx     *ui2d.Context
	session *studio.Session
	log     *zap.Logger
}

// New creates the panels for a session.
func New(ctx *ui2d.Context, session *studio.Session) *Panels {
	return &Panels{
		ctx:     ctx,
		session: session,
		log:     logger.Named("ui"),
	}
}

// Layout splits the window into the control panel and the preview area.
func Layout(width, height float32) (controls, preview ui2d.Rect) {
	cw := ControlsWidth
	if cw > width {
		cw = width
	}
	controls = ui2d.Rect{X: 0, Y: 0, W: cw, H: height}
	preview = ui2d.Rect{X: cw, Y: 0, W: width - cw, H: height}
	return controls, preview
}

// Draw draws one frame of panels. It must be called between Context Begin
// and End.
func (p *Panels) Draw(width, height float32) Actions {
	controls, preview := Layout(width, height)

	var act Actions
	c := p.ctx
	c.BeginWindow("controls", controls.X, controls.Y, controls.W, controls.H, "Avatar Studio")

	p.kindSection()
	act.Browse = p.imageSection()
	c.Separator()
	p.emotionSection()
	c.Separator()
	p.textSection()
	p.voiceSection()
	c.Separator()
	p.actionSection()

	if notice := p.session.Notice(); notice != "" {
		c.Spacer(4)
		c.LabelWrapped(notice, ui2d.ColorWarning)
	}
	c.Spacer(4)
	c.Row(0)
	c.LabelColored("Esc quit  F12 snapshot", ui2d.ColorTextDim)

	c.EndWindow()

	if preview.W > overlayWidth+2*overlayMargin {
		p.overlay(preview)
	}
	return act
}

func (p *Panels) kindSection() {
	c := p.ctx
	s := p.session

	c.Row(0)
	c.Label("Avatar")
	c.Row(0)
	w := (c.ContentWidth() - 8) / 3
	if c.Toggle("male", w, "Male", s.Kind() == avatar.ProceduralMale) {
		p.selectKind(avatar.ProceduralMale)
	}
	if c.Toggle("female", w, "Female", s.Kind() == avatar.ProceduralFemale) {
		p.selectKind(avatar.ProceduralFemale)
	}
	if s.Images().Current() == nil {
		c.ButtonDisabled("custom", w, "Image")
	} else if c.Toggle("custom", w, "Image", s.Kind() == avatar.CustomImage) {
		p.selectKind(avatar.CustomImage)
	}
}

func (p *Panels) selectKind(k avatar.Kind) {
	if err := p.session.SelectKind(k); err != nil {
		p.session.Notify("Upload an image first")
		return
	}
	p.log.Debug("kind selected", zap.String("kind", string(k)))
}

// imageSection reports whether Browse was clicked.
func (p *Panels) imageSection() bool {
	c := p.ctx
	s := p.session

	c.Row(0)
	if h := s.Images().Current(); h != nil {
		w, hh := h.Size()
		c.Label(fmt.Sprintf("%s (%dx%d)", h.Name(), w, hh))
	} else {
		c.LabelColored("Drop an image on the window", ui2d.ColorTextDim)
	}

	c.Row(0)
	w := (c.ContentWidth() - 4) / 2
	browse := c.Button("browse", w, "Browse...")
	if c.ButtonEnabled("clear", w, "Clear", s.Images().Current() != nil) {
		s.ClearImage()
		s.Notify("")
	}
	return browse
}

func (p *Panels) emotionSection() {
	c := p.ctx
	s := p.session

	c.Row(0)
	c.Label("Emotion")
	w := (c.ContentWidth() - 8) / 3
	for i, e := range avatar.Emotions {
		if i%3 == 0 {
			c.Row(0)
		}
		if c.Toggle("emotion_"+string(e), w, e.Label(), s.Emotion() == e) {
			s.SetEmotion(e)
		}
	}
}

func (p *Panels) textSection() {
	c := p.ctx
	s := p.session

	c.Row(0)
	c.Label("Text")
	c.LabelColored(fmt.Sprintf("%d/%d", s.TextLength(), speech.MaxTextLength), ui2d.ColorTextDim)

	if text, changed := c.TextArea("text", s.Text(), textAreaHeight, speech.MaxTextLength); changed {
		s.SetText(text)
	}
}

func (p *Panels) voiceSection() {
	c := p.ctx
	s := p.session

	c.Row(0)
	c.Label("Voice")
	w := (c.ContentWidth() - 4) / 2
	for i, v := range speech.Voices {
		if i%2 == 0 {
			c.Row(0)
		}
		if c.Toggle("voice_"+v.ID, w, v.Label, s.Voice() == v.ID) {
			s.SetVoice(v.ID)
		}
	}
}

func (p *Panels) actionSection() {
	c := p.ctx
	s := p.session

	c.Row(28)
	w := (c.ContentWidth() - 8) / 3
	if c.ButtonEnabled("generate", w, "Generate", s.CanGenerate()) {
		p.report("generate", s.Generate())
	}
	if c.ButtonEnabled("regenerate", w, "Regenerate", s.CanGenerate()) {
		p.report("regenerate", s.Regenerate())
	}
	if c.ButtonEnabled("export", w, "Export", s.CanExport()) {
		p.report("export", s.Export())
	}

	c.Row(0)
	if c.ButtonEnabled("stop", c.ContentWidth(), "Stop", s.Speaking()) {
		s.Stop()
	}
}

func (p *Panels) report(action string, err error) {
	if err == nil || errors.Is(err, studio.ErrExportUnsupported) {
		return
	}
	p.log.Warn("action failed", zap.String("action", action), zap.Error(err))
}

func (p *Panels) overlay(preview ui2d.Rect) {
	c := p.ctx
	s := p.session

	c.BeginWindow("overlay", preview.X+overlayMargin, preview.Y+overlayMargin, overlayWidth, overlayHeight, "Preview")
	c.Row(0)
	if s.Speaking() {
		c.LabelColored("Speaking...", ui2d.ColorSpeaking)
	} else {
		c.LabelColored("Ready", ui2d.ColorTextDim)
	}
	c.Row(0)
	c.Label("Emotion: " + s.Emotion().Label())
	c.EndWindow()
}
