// Package speech turns text into audible (or simulated) utterances and
// tracks which utterance is currently playing.
//
// Engines report progress through Callbacks. OnStart fires once audio (or
// its simulation) begins; exactly one of OnEnd or OnError follows, unless
// the utterance is stopped first, in which case no further callbacks fire.
package speech

import (
	"context"
	"errors"
	"sync"
)

// MaxTextLength is the longest text, in runes, that Generate accepts.
const MaxTextLength = 500

// DefaultVoice is used when no voice or an unknown voice is requested.
const DefaultVoice = "alloy"

var (
	ErrEmptyText   = errors.New("text is empty")
	ErrTextTooLong = errors.New("text is too long")
	ErrNoEngine    = errors.New("no speech engine available")
	ErrUnavailable = errors.New("speech engine unavailable")
)

// Voice is a selectable speaker identity.
type Voice struct {
	ID    string
	Label string
}

// Voices lists the selectable voices in display order.
var Voices = []Voice{
	{"alloy", "Alloy (Neutral)"},
	{"echo", "Echo (Male)"},
	{"fable", "Fable (British)"},
	{"onyx", "Onyx (Deep)"},
	{"nova", "Nova (Female)"},
	{"shimmer", "Shimmer (Soft)"},
}

// LookupVoice finds a voice by ID.
func LookupVoice(id string) (Voice, bool) {
	for _, v := range Voices {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// Request is one piece of text to speak.
type Request struct {
	Text    string
	VoiceID string
}

// Callbacks receive utterance progress. Any field may be nil. They may be
// called from any goroutine.
type Callbacks struct {
	OnStart func()
	OnEnd   func()
	OnError func(error)
}

func (c Callbacks) start() {
	if c.OnStart != nil {
		c.OnStart()
	}
}

func (c Callbacks) end() {
	if c.OnEnd != nil {
		c.OnEnd()
	}
}

func (c Callbacks) fail(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

// Utterance is a started speech request.
type Utterance interface {
	Stop()
}

// Engine synthesizes speech.
type Engine interface {
	Name() string
	// Available reports whether the engine can be used right now. The
	// error wraps ErrUnavailable.
	Available() error
	// Speak starts req and returns immediately. An error means nothing was
	// started and no callbacks will fire.
	Speak(ctx context.Context, req Request, cb Callbacks) (Utterance, error)
}

// Playback is a sound started on an Output.
type Playback interface {
	Stop()
}

// Output plays encoded audio (WAV or MP3). onDone runs when playback
// finishes on its own.
type Output interface {
	PlayBytes(data []byte, onDone func()) (Playback, error)
}

// utterance is the shared Utterance implementation: a cancelable job that
// may later own a Playback.
type utterance struct {
	cancel context.CancelFunc

	mu       sync.Mutex
	stopped  bool
	playback Playback
}

func newUtterance(ctx context.Context) (*utterance, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	return &utterance{cancel: cancel}, ctx
}

func (u *utterance) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.stopped {
		return
	}
	u.stopped = true
	u.cancel()
	if u.playback != nil {
		u.playback.Stop()
	}
}

func (u *utterance) isStopped() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stopped
}

// attach hands p to the utterance. It returns false, after stopping p, if
// the utterance was already stopped.
func (u *utterance) attach(p Playback) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.stopped {
		p.Stop()
		return false
	}
	u.playback = p
	return true
}

// done releases the utterance context once nothing more will happen.
func (u *utterance) done() {
	u.cancel()
}

// play starts data on out and reports through cb on behalf of u.
func play(u *utterance, out Output, data []byte, cb Callbacks) {
	pb, err := out.PlayBytes(data, func() {
		u.done()
		if !u.isStopped() {
			cb.end()
		}
	})
	if err != nil {
		u.done()
		if !u.isStopped() {
			cb.fail(err)
		}
		return
	}
	if !u.attach(pb) {
		return
	}
	cb.start()
}
