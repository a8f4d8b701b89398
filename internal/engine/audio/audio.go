// Package audio plays synthesized speech through the system speaker.
//
// The Player holds at most one active Track. Starting a new track stops the
// previous one, and a stopped track never reports completion.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned when playing before Init.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrUnknownFormat is returned when data is neither WAV nor MP3.
	ErrUnknownFormat = errors.New("unknown audio format")
)

// sink is the output device. The speaker package in production.
type sink interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerSink struct{}

func (speakerSink) Init(sr beep.SampleRate, n int) error { return speaker.Init(sr, n) }
func (speakerSink) Play(s ...beep.Streamer)              { speaker.Play(s...) }
func (speakerSink) Clear()                               { speaker.Clear() }
func (speakerSink) Lock()                                { speaker.Lock() }
func (speakerSink) Unlock()                              { speaker.Unlock() }

// Player owns the speaker and the current track.
type Player struct {
	mu sync.Mutex

	out         sink
	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64
	muted        bool

	current *Track
}

// New creates a player for the given sample rate. A non-positive rate
// selects DefaultSampleRate.
func New(sampleRate int) *Player {
	sr := DefaultSampleRate
	if sampleRate > 0 {
		sr = beep.SampleRate(sampleRate)
	}
	return &Player{
		out:          speakerSink{},
		sampleRate:   sr,
		masterVolume: 1.0,
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := p.out.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker queue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.stop()
		p.current = nil
	}
	if p.initialized {
		p.out.Clear()
	}
	p.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (p *Player) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (p *Player) SetMasterVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.masterVolume = clamp(vol, 0, 1)
	p.updateVolume()
}

// MasterVolume returns the master volume.
func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.masterVolume
}

// SetMuted silences output without touching the volume level.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.updateVolume()
}

func (p *Player) updateVolume() {
	if p.current == nil {
		return
	}
	p.out.Lock()
	applyVolume(p.current.volume, p.masterVolume, p.muted)
	p.out.Unlock()
}

func applyVolume(v *effects.Volume, level float64, muted bool) {
	if muted || level <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = volumeToDb(level)
}

// dbBase makes effects.Volume.Volume a decibel value.
var dbBase = math.Pow(10, 1.0/20)

// volumeToDb converts a 0-1 amplitude level to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Decode sniffs data and decodes it as WAV or MP3.
func Decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := io.NopCloser(bytes.NewReader(data))
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		s, f, err := wav.Decode(rc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
		}
		return s, f, nil
	case len(data) >= 3 && string(data[0:3]) == "ID3",
		len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		s, f, err := mp3.Decode(rc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode mp3: %w", err)
		}
		return s, f, nil
	}
	return nil, beep.Format{}, ErrUnknownFormat
}

// PlayBytes decodes data and plays it. See Play.
func (p *Player) PlayBytes(data []byte, onDone func()) (*Track, error) {
	streamer, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	track, err := p.Play(streamer, format, onDone)
	if err != nil {
		streamer.Close()
		return nil, err
	}
	return track, nil
}

// Play stops the current track and starts streamer. onDone runs on the
// speaker goroutine when the track finishes naturally; it is not called
// for a track that was stopped. The player takes ownership of streamer.
func (p *Player) Play(streamer beep.StreamSeekCloser, format beep.Format, onDone func()) (*Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil, ErrNotInitialized
	}

	if p.current != nil {
		p.current.stop()
		p.current = nil
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}

	t := &Track{
		out:      p.out,
		streamer: streamer,
		duration: format.SampleRate.D(streamer.Len()),
	}
	t.ctrl = &beep.Ctrl{Streamer: resampled}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: dbBase}
	applyVolume(t.volume, p.masterVolume, p.muted)

	p.current = t
	p.out.Play(beep.Seq(t.volume, beep.Callback(func() {
		if !t.finish(onDone) {
			return
		}
		go p.forget(t)
	})))

	return t, nil
}

func (p *Player) forget(t *Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == t {
		p.current = nil
	}
}

// Stop stops the current track, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.stop()
		p.current = nil
	}
}

// Track is one playing sound.
type Track struct {
	out      sink
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	duration time.Duration

	ended atomic.Bool
}

// Duration returns the decoded length of the track.
func (t *Track) Duration() time.Duration {
	return t.duration
}

// Stop halts the track. Safe to call more than once.
func (t *Track) Stop() {
	t.stop()
}

func (t *Track) stop() {
	if !t.ended.CompareAndSwap(false, true) {
		return
	}
	t.out.Lock()
	t.ctrl.Streamer = nil
	t.out.Unlock()
	t.streamer.Close()
}

// finish runs inside the speaker callback, which holds the speaker lock.
// It must not block on the sink or the player mutex.
func (t *Track) finish(onDone func()) bool {
	if !t.ended.CompareAndSwap(false, true) {
		return false
	}
	t.streamer.Close()
	if onDone != nil {
		go onDone()
	}
	return true
}

// Ended reports whether the track finished or was stopped.
func (t *Track) Ended() bool {
	return t.ended.Load()
}
