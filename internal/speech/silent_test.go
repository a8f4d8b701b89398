package speech

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		text string
		wpm  int
		min  time.Duration
		want time.Duration
	}{
		{"", 165, time.Second, time.Second},
		{"hello", 165, time.Second, time.Second},
		{strings.Repeat("word ", 165), 165, time.Second, time.Minute},
		{strings.Repeat("word ", 330), 165, time.Second, 2 * time.Minute},
		{strings.Repeat("word ", 60), 120, 0, 30 * time.Second},
		{strings.Repeat("word ", 165), 0, 0, time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateDuration(tt.text, tt.wpm, tt.min))
	}
}

func TestNewSilentDefaults(t *testing.T) {
	e := NewSilent(0)
	assert.Equal(t, 165, e.WordsPerMinute)
	assert.Equal(t, time.Second, e.MinDuration)
	assert.NoError(t, e.Available())
	assert.Equal(t, "silent", e.Name())
}

func TestSilentSpeakRunsToEnd(t *testing.T) {
	e := &SilentEngine{WordsPerMinute: 165, MinDuration: 20 * time.Millisecond}
	rec := &recorder{}

	_, err := e.Speak(context.Background(), Request{Text: "hi"}, rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, []string{"start"}, rec.snapshot())

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"start", "end"}, rec.snapshot())
}

func TestSilentStopSuppressesEnd(t *testing.T) {
	e := &SilentEngine{WordsPerMinute: 165, MinDuration: 30 * time.Millisecond}
	rec := &recorder{}

	u, err := e.Speak(context.Background(), Request{Text: "hi"}, rec.callbacks())
	require.NoError(t, err)
	u.Stop()
	u.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"start"}, rec.snapshot())
}

func TestSilentContextCancelStopsTimer(t *testing.T) {
	e := &SilentEngine{WordsPerMinute: 165, MinDuration: 30 * time.Millisecond}
	rec := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	_, err := e.Speak(ctx, Request{Text: "hi"}, rec.callbacks())
	require.NoError(t, err)
	cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"start"}, rec.snapshot())

	_, err = e.Speak(ctx, Request{Text: "hi"}, rec.callbacks())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"start"}, rec.snapshot())
}
