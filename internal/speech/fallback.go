package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// Fallback tries its engines in order. An engine that is unavailable,
// refuses the request, or fails before audio starts is skipped with a
// notice and the next one is tried.
type Fallback struct {
	engines []Engine
	notify  func(string)
}

// NewFallback creates a chain. notify may be nil.
func NewFallback(notify func(string), engines ...Engine) *Fallback {
	if notify == nil {
		notify = func(string) {}
	}
	return &Fallback{engines: engines, notify: notify}
}

// Name implements Engine.
func (f *Fallback) Name() string {
	names := make([]string, len(f.engines))
	for i, e := range f.engines {
		names[i] = e.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

// Available implements Engine. The chain is available if any engine is.
func (f *Fallback) Available() error {
	var errs []error
	for _, e := range f.engines {
		err := e.Available()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("%w: %w", ErrNoEngine, errors.Join(errs...))
}

type chainUtterance struct {
	mu      sync.Mutex
	stopped bool
	current Utterance
}

func (c *chainUtterance) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.current != nil {
		c.current.Stop()
	}
}

func (c *chainUtterance) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *chainUtterance) set(u Utterance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = u
	if c.stopped {
		u.Stop()
	}
}

// Speak implements Engine.
func (f *Fallback) Speak(ctx context.Context, req Request, cb Callbacks) (Utterance, error) {
	cu := &chainUtterance{}
	if err := f.speakFrom(ctx, 0, req, cb, cu); err != nil {
		return nil, err
	}
	return cu, nil
}

func (f *Fallback) speakFrom(ctx context.Context, i int, req Request, cb Callbacks, cu *chainUtterance) error {
	var errs []error
	for ; i < len(f.engines); i++ {
		e := f.engines[i]
		if err := e.Available(); err != nil {
			errs = append(errs, err)
			f.notify(fmt.Sprintf("%s speech skipped: %v", e.Name(), err))
			continue
		}

		next := i + 1
		var started atomic.Bool
		u, err := e.Speak(ctx, req, Callbacks{
			OnStart: func() {
				started.Store(true)
				cb.start()
			},
			OnEnd: cb.OnEnd,
			OnError: func(err error) {
				if cu.isStopped() {
					return
				}
				if started.Load() || next >= len(f.engines) {
					cb.fail(err)
					return
				}
				f.notify(fmt.Sprintf("%s speech failed, trying next engine: %v", e.Name(), err))
				if err := f.speakFrom(ctx, next, req, cb, cu); err != nil {
					cb.fail(err)
				}
			},
		})
		if err != nil {
			errs = append(errs, err)
			f.notify(fmt.Sprintf("%s speech failed: %v", e.Name(), err))
			continue
		}
		cu.set(u)
		return nil
	}
	if len(errs) == 0 {
		return ErrNoEngine
	}
	return fmt.Errorf("%w: %w", ErrNoEngine, errors.Join(errs...))
}
