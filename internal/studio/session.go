// Package studio ties the avatar, speech and image ingestion together
// behind the studio window.
package studio

import (
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/ingest"
	"github.com/Faultbox/lipsync-avatar/internal/logger"
	"github.com/Faultbox/lipsync-avatar/internal/speech"
)

// ExportMessage is shown when the user asks for an export.
const ExportMessage = "Export to MP4 is not implemented: it needs an offline renderer with video encoding."

var (
	ErrExportUnsupported = errors.New("video export is not supported")
	ErrSpeaking          = errors.New("already speaking")
	ErrNoImage           = errors.New("no custom image loaded")
)

// Speaker is the part of speech.Controller the session drives.
type Speaker interface {
	Generate(text, voiceID string) (uuid.UUID, error)
	Stop()
	State() avatar.PlaybackState
}

// Options are the initial session selections.
type Options struct {
	Kind    avatar.Kind
	Emotion avatar.Emotion
	Voice   string
}

// Session is the studio state that does not depend on the window: the
// selections, the text, the current image and the notice line.
type Session struct {
	speaker Speaker
	loader  *ingest.Loader
	images  *ingest.Store
	log     *zap.Logger

	kind    avatar.Kind
	emotion avatar.Emotion
	text    string
	voice   string

	mu     sync.Mutex
	notice string
}

// NewSession creates a session. Unknown initial values fall back to the
// defaults of their type.
func NewSession(speaker Speaker, loader *ingest.Loader, opts Options) *Session {
	s := &Session{
		speaker: speaker,
		loader:  loader,
		images:  &ingest.Store{},
		log:     logger.Named("studio"),
		kind:    avatar.ParseKind(string(opts.Kind)),
		emotion: avatar.ParseEmotion(string(opts.Emotion)),
		voice:   speech.DefaultVoice,
	}
	s.SetVoice(opts.Voice)
	if s.kind == avatar.CustomImage {
		// Custom requires an image; LoadImage switches back to it.
		s.kind = avatar.ProceduralMale
	}
	return s
}

// Kind returns the selected avatar kind.
func (s *Session) Kind() avatar.Kind { return s.kind }

// SelectKind switches the avatar. Selecting CustomImage without a loaded
// image fails with ErrNoImage.
func (s *Session) SelectKind(k avatar.Kind) error {
	if k == avatar.CustomImage && s.images.Current() == nil {
		return ErrNoImage
	}
	s.kind = avatar.ParseKind(string(k))
	return nil
}

// Emotion returns the selected emotion.
func (s *Session) Emotion() avatar.Emotion { return s.emotion }

// SetEmotion selects an emotion. Unknown values select Neutral.
func (s *Session) SetEmotion(e avatar.Emotion) {
	s.emotion = avatar.ParseEmotion(string(e))
}

// Voice returns the selected voice ID.
func (s *Session) Voice() string { return s.voice }

// SetVoice selects a voice. Unknown IDs are ignored.
func (s *Session) SetVoice(id string) {
	if _, ok := speech.LookupVoice(id); ok {
		s.voice = id
	}
}

// Text returns the current text.
func (s *Session) Text() string { return s.text }

// SetText replaces the text, cutting it to speech.MaxTextLength runes.
func (s *Session) SetText(text string) {
	if utf8.RuneCountInString(text) > speech.MaxTextLength {
		r := []rune(text)
		text = string(r[:speech.MaxTextLength])
	}
	s.text = text
}

// TextLength returns the text length in runes.
func (s *Session) TextLength() int {
	return utf8.RuneCountInString(s.text)
}

// Images returns the image store.
func (s *Session) Images() *ingest.Store { return s.images }

// LoadImage loads path as the custom image and selects the CustomImage
// kind. On failure the previous image and kind are kept and a notice is
// set.
func (s *Session) LoadImage(path string) error {
	h, err := s.loader.LoadFile(path)
	if err != nil {
		s.Notify("Could not load image: " + err.Error())
		s.log.Warn("image rejected", zap.String("path", path), zap.Error(err))
		return err
	}
	s.SetImage(h)
	return nil
}

// SetImage makes h the custom image and selects the CustomImage kind.
func (s *Session) SetImage(h *ingest.Handle) {
	s.images.Replace(h)
	s.kind = avatar.CustomImage
	w, hh := h.Size()
	s.log.Info("custom image loaded", zap.String("name", h.Name()), zap.Int("width", w), zap.Int("height", hh))
	s.Notify("Loaded " + h.Name())
}

// ClearImage releases the custom image and returns to the male avatar if
// it was shown.
func (s *Session) ClearImage() {
	s.images.Clear()
	if s.kind == avatar.CustomImage {
		s.kind = avatar.ProceduralMale
	}
}

// Speaking reports whether speech is playing.
func (s *Session) Speaking() bool {
	return s.speaker.State().Speaking()
}

// CanGenerate reports whether Generate and Regenerate are enabled.
func (s *Session) CanGenerate() bool {
	return speech.Validate(s.text) == nil && !s.Speaking()
}

// CanExport reports whether Export is enabled.
func (s *Session) CanExport() bool {
	return s.text != ""
}

// Generate speaks the current text with the selected voice.
func (s *Session) Generate() error {
	if err := speech.Validate(s.text); err != nil {
		return err
	}
	if s.Speaking() {
		return ErrSpeaking
	}
	s.Notify("")
	id, err := s.speaker.Generate(s.text, s.voice)
	if err != nil {
		s.Notify("Speech failed: " + err.Error())
		return err
	}
	s.log.Debug("generate", zap.Stringer("utterance", id))
	return nil
}

// Regenerate speaks the current text again.
func (s *Session) Regenerate() error {
	return s.Generate()
}

// Stop stops speech.
func (s *Session) Stop() {
	s.speaker.Stop()
}

// Export is not supported. It always sets ExportMessage as the notice and
// returns ErrExportUnsupported.
func (s *Session) Export() error {
	s.Notify(ExportMessage)
	s.log.Info("export requested", zap.Int("chars", s.TextLength()))
	return ErrExportUnsupported
}

// Pose returns the avatar pose at t seconds.
func (s *Session) Pose(t float64) avatar.Pose {
	return avatar.ComputePose(t, s.emotion, s.kind, s.Speaking())
}

// Notify sets the notice line. Safe from any goroutine.
func (s *Session) Notify(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

// Notice returns the notice line.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Close stops speech and releases the image.
func (s *Session) Close() {
	s.speaker.Stop()
	s.images.Close()
}
