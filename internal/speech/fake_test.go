package speech

import (
	"context"
	"sync"
	"sync/atomic"
)

type fakeUtterance struct {
	stopped atomic.Bool
}

func (u *fakeUtterance) Stop() { u.stopped.Store(true) }

type fakeCall struct {
	req Request
	cb  Callbacks
	u   *fakeUtterance
}

// fakeEngine records each Speak call; tests drive the callbacks.
type fakeEngine struct {
	name        string
	unavailable error
	speakErr    error

	mu    sync.Mutex
	calls []*fakeCall
}

func (e *fakeEngine) Name() string {
	if e.name == "" {
		return "fake"
	}
	return e.name
}

func (e *fakeEngine) Available() error { return e.unavailable }

func (e *fakeEngine) Speak(_ context.Context, req Request, cb Callbacks) (Utterance, error) {
	if e.speakErr != nil {
		return nil, e.speakErr
	}
	c := &fakeCall{req: req, cb: cb, u: &fakeUtterance{}}
	e.mu.Lock()
	e.calls = append(e.calls, c)
	e.mu.Unlock()
	return c.u, nil
}

func (e *fakeEngine) call(i int) *fakeCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[i]
}

func (e *fakeEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

type fakePlayback struct {
	stopped atomic.Bool
}

func (p *fakePlayback) Stop() { p.stopped.Store(true) }

type fakeOutput struct {
	err error

	mu        sync.Mutex
	data      [][]byte
	onDone    []func()
	playbacks []*fakePlayback
}

func (o *fakeOutput) PlayBytes(data []byte, onDone func()) (Playback, error) {
	if o.err != nil {
		return nil, o.err
	}
	pb := &fakePlayback{}
	o.mu.Lock()
	o.data = append(o.data, data)
	o.onDone = append(o.onDone, onDone)
	o.playbacks = append(o.playbacks, pb)
	o.mu.Unlock()
	return pb, nil
}

func (o *fakeOutput) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.data)
}

func (o *fakeOutput) finish(i int) {
	o.mu.Lock()
	done := o.onDone[i]
	o.mu.Unlock()
	done()
}

// recorder collects callback events and notices.
type recorder struct {
	mu      sync.Mutex
	events  []string
	errs    []error
	notices []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStart: func() { r.add("start") },
		OnEnd:   func() { r.add("end") },
		OnError: func(err error) {
			r.mu.Lock()
			r.errs = append(r.errs, err)
			r.mu.Unlock()
			r.add("error")
		},
	}
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) noticeList() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notices...)
}
