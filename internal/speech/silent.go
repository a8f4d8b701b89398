package speech

import (
	"context"
	"strings"
	"time"
)

// SilentEngine produces no sound. It simulates an utterance long enough to
// read the text aloud so the avatar still animates.
type SilentEngine struct {
	WordsPerMinute int
	MinDuration    time.Duration
}

// NewSilent creates a silent engine. A non-positive wpm selects 165.
func NewSilent(wpm int) *SilentEngine {
	if wpm <= 0 {
		wpm = 165
	}
	return &SilentEngine{WordsPerMinute: wpm, MinDuration: time.Second}
}

// Name implements Engine.
func (e *SilentEngine) Name() string { return "silent" }

// Available implements Engine. The silent engine is always available.
func (e *SilentEngine) Available() error { return nil }

// EstimateDuration returns how long reading text takes at wpm, never less
// than min.
func EstimateDuration(text string, wpm int, min time.Duration) time.Duration {
	words := len(strings.Fields(text))
	if wpm <= 0 {
		wpm = 165
	}
	d := time.Duration(words) * time.Minute / time.Duration(wpm)
	if d < min {
		return min
	}
	return d
}

type timerPlayback struct {
	t *time.Timer
}

func (p timerPlayback) Stop() { p.t.Stop() }

// Speak implements Engine. OnStart fires before Speak returns. Canceling
// ctx stops the utterance like Stop: the timer is dropped and OnEnd never
// fires.
func (e *SilentEngine) Speak(ctx context.Context, req Request, cb Callbacks) (Utterance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, _ := newUtterance(ctx)
	d := EstimateDuration(req.Text, e.WordsPerMinute, e.MinDuration)

	stopOnCancel := context.AfterFunc(ctx, u.Stop)
	timer := time.AfterFunc(d, func() {
		stopOnCancel()
		u.done()
		if !u.isStopped() {
			cb.end()
		}
	})
	if !u.attach(timerPlayback{t: timer}) {
		stopOnCancel()
		return u, nil
	}
	cb.start()
	return u, nil
}
