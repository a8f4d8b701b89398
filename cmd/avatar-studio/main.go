// Command avatar-studio is the lipsync avatar studio window.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/app"
	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/config"
	"github.com/Faultbox/lipsync-avatar/internal/engine/audio"
	"github.com/Faultbox/lipsync-avatar/internal/ingest"
	"github.com/Faultbox/lipsync-avatar/internal/logger"
	"github.com/Faultbox/lipsync-avatar/internal/speech"
	"github.com/Faultbox/lipsync-avatar/internal/studio"
)

const windowTitle = "Lipsync Avatar Studio"

func main() {
	// Parse CLI flags
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Lipsync Avatar Studio ===")
	logger.Debug("configuration", zap.String("config", cfg.String()))

	if err := run(cfg); err != nil {
		logger.Error("studio failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("studio closed normally")
}

func run(cfg *config.Config) error {
	player := audio.New(cfg.Audio.SampleRate)
	if err := player.Init(); err != nil {
		// Engines that need audio fail over to the silent one.
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer player.Close()
	player.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	player.SetMuted(cfg.Audio.Muted)

	apiKey, err := cfg.OpenAIKey()
	if err != nil {
		logger.Warn("resolving OpenAI key", zap.Error(err))
	}

	// The session does not exist yet when engines are built.
	var session *studio.Session
	notify := func(msg string) {
		if session != nil {
			session.Notify(msg)
		}
	}

	engine, err := speech.Build(cfg.Speech.Engines, speech.Options{
		APIKey:         apiKey,
		OpenAIModel:    cfg.Speech.OpenAIModel,
		OpenAIFormat:   cfg.Speech.OpenAIFormat,
		Timeout:        cfg.Speech.Timeout,
		SystemCommand:  cfg.Speech.SystemCommand,
		WordsPerMinute: cfg.Speech.WordsPerMinute,
		Output:         playerOutput{player},
		Notify:         notify,
	})
	if err != nil {
		return fmt.Errorf("speech engines: %w", err)
	}
	logger.Info("speech configured", zap.String("engine", engine.Name()))

	controller := speech.NewController(engine, notify)
	defer controller.Close()

	loader := ingest.NewLoader(cfg.Ingest.MaxBytes)
	if cfg.Ingest.MaxPixels > 0 {
		loader.MaxPixels = cfg.Ingest.MaxPixels
	}
	session = studio.NewSession(controller, loader, studio.Options{
		Kind:    avatar.Kind(cfg.Avatar.Kind),
		Emotion: avatar.Emotion(cfg.Avatar.Emotion),
		Voice:   cfg.Speech.Voice,
	})
	defer session.Close()

	if cfg.Avatar.Image != "" {
		if err := session.LoadImage(cfg.Avatar.Image); err != nil {
			logger.Warn("startup image rejected", zap.String("path", cfg.Avatar.Image), zap.Error(err))
		}
	}

	a, err := app.New(app.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		FPSLimit:   cfg.Graphics.FPSLimit,
		ShowFPS:    cfg.Graphics.ShowFPS,

		ScreenshotDir: cfg.Graphics.ScreenshotDir,
	}, session)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run()
}

// playerOutput adapts the audio player to speech.Output.
type playerOutput struct {
	p *audio.Player
}

func (o playerOutput) PlayBytes(data []byte, onDone func()) (speech.Playback, error) {
	track, err := o.p.PlayBytes(data, onDone)
	if err != nil {
		return nil, err
	}
	return track, nil
}
