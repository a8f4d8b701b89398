package speech

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/logger"
)

// Validate checks text against the limits Generate enforces.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, n, MaxTextLength)
	}
	return nil
}

type active struct {
	id      uuid.UUID
	u       Utterance
	ended   bool
	started bool
}

// Controller keeps at most one utterance playing and exposes whether the
// avatar is speaking.
type Controller struct {
	engine   Engine
	onNotice func(string)
	log      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	current *active

	state atomic.Int32
}

// NewController creates a controller over engine. onNotice receives
// user-facing messages about fallbacks and failures; it may be nil and may
// be called from any goroutine.
func NewController(engine Engine, onNotice func(string)) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		engine:   engine,
		onNotice: onNotice,
		log:      logger.Named("speech"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns the current playback state. Safe from any goroutine.
func (c *Controller) State() avatar.PlaybackState {
	return avatar.PlaybackState(c.state.Load())
}

// Speaking is shorthand for State().Speaking().
func (c *Controller) Speaking() bool {
	return c.State().Speaking()
}

func (c *Controller) setState(s avatar.PlaybackState) {
	c.state.Store(int32(s))
}

func (c *Controller) notice(msg string) {
	c.log.Warn(msg)
	if c.onNotice != nil {
		c.onNotice(msg)
	}
}

// Generate validates text, stops any active utterance and starts a new one.
// An unknown voice falls back to DefaultVoice with a notice.
func (c *Controller) Generate(text, voiceID string) (uuid.UUID, error) {
	if err := Validate(text); err != nil {
		return uuid.Nil, err
	}
	if _, ok := LookupVoice(voiceID); !ok {
		if voiceID != "" {
			c.notice(fmt.Sprintf("Unknown voice %q, using %s", voiceID, DefaultVoice))
		}
		voiceID = DefaultVoice
	}

	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return uuid.Nil, fmt.Errorf("controller closed: %w", c.ctx.Err())
	}
	c.stopLocked()
	a := &active{id: uuid.New()}
	c.current = a
	c.mu.Unlock()

	c.log.Info("utterance requested",
		zap.Stringer("id", a.id),
		zap.String("voice", voiceID),
		zap.Int("chars", utf8.RuneCountInString(text)))

	u, err := c.engine.Speak(c.ctx, Request{Text: text, VoiceID: voiceID}, Callbacks{
		OnStart: func() { c.started(a) },
		OnEnd:   func() { c.ended(a, nil) },
		OnError: func(err error) { c.ended(a, err) },
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if c.current == a {
			c.current = nil
			c.setState(avatar.Idle)
		}
		return uuid.Nil, fmt.Errorf("speak: %w", err)
	}
	if c.current != a {
		// Superseded while Speak was running.
		u.Stop()
		return a.id, nil
	}
	a.u = u
	return a.id, nil
}

func (c *Controller) started(a *active) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != a || a.ended {
		return
	}
	a.started = true
	c.setState(avatar.Speaking)
	c.log.Debug("utterance started", zap.Stringer("id", a.id))
}

func (c *Controller) ended(a *active, err error) {
	c.mu.Lock()
	if c.current != a || a.ended {
		c.mu.Unlock()
		return
	}
	a.ended = true
	c.current = nil
	c.setState(avatar.Idle)
	c.mu.Unlock()

	if err != nil {
		c.notice(fmt.Sprintf("Speech failed: %v", err))
		return
	}
	c.log.Debug("utterance finished", zap.Stringer("id", a.id))
}

// Stop stops the active utterance, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.current == nil {
		return
	}
	if c.current.u != nil {
		c.current.u.Stop()
	}
	c.log.Debug("utterance stopped", zap.Stringer("id", c.current.id))
	c.current = nil
	c.setState(avatar.Idle)
}

// Close stops playback and rejects further requests.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.cancel()
}
