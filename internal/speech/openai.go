package speech

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/logger"
)

// OpenAIConfig configures the OpenAI speech engine.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Format  string // "mp3" or "wav"
	Timeout time.Duration
	// Options are appended to the client options, after the API key.
	Options []option.RequestOption
}

// OpenAIEngine speaks through the OpenAI text-to-speech endpoint.
type OpenAIEngine struct {
	client openai.Client
	cfg    OpenAIConfig
	out    Output
	log    *zap.Logger
}

// NewOpenAI creates the engine. A missing key makes it unavailable, not an
// error, so it can sit first in a fallback chain.
func NewOpenAI(cfg OpenAIConfig, out Output) *OpenAIEngine {
	if cfg.Model == "" {
		cfg.Model = openai.SpeechModelTTS1
	}
	if cfg.Format == "" {
		cfg.Format = "mp3"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	opts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	return &OpenAIEngine{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		out:    out,
		log:    logger.Named("speech.openai"),
	}
}

// Name implements Engine.
func (e *OpenAIEngine) Name() string { return "openai" }

// Available implements Engine.
func (e *OpenAIEngine) Available() error {
	if e.cfg.APIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrUnavailable)
	}
	return nil
}

// Speak implements Engine. The request runs in the background.
func (e *OpenAIEngine) Speak(ctx context.Context, req Request, cb Callbacks) (Utterance, error) {
	if err := e.Available(); err != nil {
		return nil, err
	}

	u, ctx := newUtterance(ctx)
	go func() {
		start := time.Now()
		data, err := e.synthesize(ctx, req)
		if err != nil {
			u.done()
			if !u.isStopped() {
				cb.fail(err)
			}
			return
		}
		e.log.Debug("speech synthesized",
			zap.Int("bytes", len(data)),
			zap.String("voice", req.VoiceID),
			zap.Duration("took", time.Since(start)))
		if u.isStopped() {
			return
		}
		play(u, e.out, data, cb)
	}()
	return u, nil
}

func (e *OpenAIEngine) synthesize(ctx context.Context, req Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	format := openai.AudioSpeechNewParamsResponseFormatMP3
	if e.cfg.Format == "wav" {
		format = openai.AudioSpeechNewParamsResponseFormatWAV
	}

	resp, err := e.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(e.cfg.Model),
		Input:          req.Text,
		Voice:          openai.AudioSpeechNewParamsVoice(req.VoiceID),
		ResponseFormat: format,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai speech: read body: %w", err)
	}
	return data, nil
}
