package audio

import (
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu      sync.Mutex
	played  []beep.Streamer
	cleared int
	failure error
}

func (f *fakeSink) Init(beep.SampleRate, int) error { return f.failure }
func (f *fakeSink) Play(s ...beep.Streamer) {
	f.mu.Lock()
	f.played = append(f.played, s...)
	f.mu.Unlock()
}
func (f *fakeSink) Clear()  { f.cleared++ }
func (f *fakeSink) Lock()   { f.mu.Lock() }
func (f *fakeSink) Unlock() { f.mu.Unlock() }

// drain streams the i-th played streamer to the end under the sink lock,
// the way the speaker goroutine does.
func (f *fakeSink) drain(i int) {
	buf := make([][2]float64, 64)
	for {
		f.mu.Lock()
		_, ok := f.played[i].Stream(buf)
		f.mu.Unlock()
		if !ok {
			return
		}
	}
}

type tone struct {
	pos, n int
	closed bool
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.closed || t.pos >= t.n {
		return 0, false
	}
	k := min(len(samples), t.n-t.pos)
	for i := 0; i < k; i++ {
		samples[i] = [2]float64{0.1, 0.1}
	}
	t.pos += k
	return k, true
}
func (t *tone) Err() error       { return nil }
func (t *tone) Len() int         { return t.n }
func (t *tone) Position() int    { return t.pos }
func (t *tone) Seek(p int) error { t.pos = p; return nil }
func (t *tone) Close() error     { t.closed = true; return nil }

var testFormat = beep.Format{SampleRate: DefaultSampleRate, NumChannels: 1, Precision: 2}

func newTestPlayer(t *testing.T) (*Player, *fakeSink) {
	t.Helper()
	p := New(0)
	fs := &fakeSink{}
	p.out = fs
	require.NoError(t, p.Init())
	return p, fs
}

func waitDone(t *testing.T, done <-chan struct{}) bool {
	t.Helper()
	select {
	case <-done:
		return true
	case <-time.After(time.Second):
		return false
	}
}

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},
		{0.5, -8, -4},
		{0.25, -14, -10},
		{0.0, -200, -90},
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestSetVolumeClamps(t *testing.T) {
	p := New(0)
	assert.Equal(t, 1.0, p.MasterVolume())

	p.SetMasterVolume(0.5)
	assert.Equal(t, 0.5, p.MasterVolume())
	p.SetMasterVolume(2.0)
	assert.Equal(t, 1.0, p.MasterVolume())
	p.SetMasterVolume(-1.0)
	assert.Equal(t, 0.0, p.MasterVolume())
}

func TestInitFailure(t *testing.T) {
	p := New(22050)
	p.out = &fakeSink{failure: errors.New("no device")}
	err := p.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init speaker")
	assert.False(t, p.IsInitialized())
}

func TestPlayRequiresInit(t *testing.T) {
	p := New(0)
	_, err := p.Play(&tone{n: 10}, testFormat, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestPlayCompletes(t *testing.T) {
	p, fs := newTestPlayer(t)

	done := make(chan struct{})
	track, err := p.Play(&tone{n: 441}, testFormat, func() { close(done) })
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, track.Duration())

	fs.drain(0)
	assert.True(t, waitDone(t, done), "onDone not called")
	assert.True(t, track.Ended())
}

func TestNewTrackStopsPrevious(t *testing.T) {
	p, fs := newTestPlayer(t)

	firstDone := make(chan struct{})
	first, err := p.Play(&tone{n: 1000}, testFormat, func() { close(firstDone) })
	require.NoError(t, err)

	secondDone := make(chan struct{})
	second, err := p.Play(&tone{n: 100}, testFormat, func() { close(secondDone) })
	require.NoError(t, err)

	assert.True(t, first.Ended())
	assert.False(t, second.Ended())

	fs.drain(0)
	fs.drain(1)
	assert.True(t, waitDone(t, secondDone))
	assert.False(t, waitDone(t, firstDone), "stopped track reported completion")
}

func TestStopSuppressesCompletion(t *testing.T) {
	p, fs := newTestPlayer(t)

	done := make(chan struct{})
	src := &tone{n: 1000}
	track, err := p.Play(src, testFormat, func() { close(done) })
	require.NoError(t, err)

	p.Stop()
	track.Stop()
	assert.True(t, src.closed)

	fs.drain(0)
	assert.False(t, waitDone(t, done))
}

func TestMuteSilencesCurrentTrack(t *testing.T) {
	p, _ := newTestPlayer(t)
	track, err := p.Play(&tone{n: 1000}, testFormat, nil)
	require.NoError(t, err)

	p.SetMuted(true)
	assert.True(t, track.volume.Silent)
	p.SetMuted(false)
	assert.False(t, track.volume.Silent)
	p.SetMasterVolume(0.5)
	assert.InDelta(t, -6.02, track.volume.Volume, 0.01)
}

func TestCloseStopsPlayback(t *testing.T) {
	p, fs := newTestPlayer(t)
	track, err := p.Play(&tone{n: 1000}, testFormat, nil)
	require.NoError(t, err)

	p.Close()
	assert.True(t, track.Ended())
	assert.Equal(t, 1, fs.cleared)
	assert.False(t, p.IsInitialized())
}

func pcmWAV(sampleRate, samples int) []byte {
	dataLen := samples * 2
	b := make([]byte, 44+dataLen)
	copy(b[0:], "RIFF")
	binary.LittleEndian.PutUint32(b[4:], uint32(36+dataLen))
	copy(b[8:], "WAVE")
	copy(b[12:], "fmt ")
	binary.LittleEndian.PutUint32(b[16:], 16)
	binary.LittleEndian.PutUint16(b[20:], 1)
	binary.LittleEndian.PutUint16(b[22:], 1)
	binary.LittleEndian.PutUint32(b[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(b[28:], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(b[32:], 2)
	binary.LittleEndian.PutUint16(b[34:], 16)
	copy(b[36:], "data")
	binary.LittleEndian.PutUint32(b[40:], uint32(dataLen))
	return b
}

func TestDecodeWAV(t *testing.T) {
	s, f, err := Decode(pcmWAV(8000, 800))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, beep.SampleRate(8000), f.SampleRate)
	assert.Equal(t, 800, s.Len())
	assert.Equal(t, 100*time.Millisecond, f.SampleRate.D(s.Len()))
}

func TestDecodeUnknown(t *testing.T) {
	_, _, err := Decode([]byte("definitely not audio"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, _, err = Decode(nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPlayBytesResamples(t *testing.T) {
	p, fs := newTestPlayer(t)

	done := make(chan struct{})
	track, err := p.PlayBytes(pcmWAV(8000, 400), func() { close(done) })
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, track.Duration())

	fs.drain(0)
	assert.True(t, waitDone(t, done))
}
