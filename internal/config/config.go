// Package config handles studio configuration loading and management.
package config

import "time"

// Config holds all studio settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Speech   SpeechConfig   `yaml:"speech"`
	Avatar   AvatarConfig   `yaml:"avatar"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig holds audio output settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
	SampleRate   int     `yaml:"sample_rate"`
}

// SpeechConfig selects and configures speech engines.
type SpeechConfig struct {
	// Engines is the fallback order. Known names: openai, system, silent.
	Engines []string      `yaml:"engines"`
	Voice   string        `yaml:"voice"`
	Timeout time.Duration `yaml:"timeout"`

	OpenAIModel  string `yaml:"openai_model"`
	OpenAIFormat string `yaml:"openai_format"` // mp3 or wav
	OpenAIAPIKey string `yaml:"openai_api_key"`
	EnvFile      string `yaml:"env_file"`

	// SystemCommand overrides the OS speech command lookup.
	SystemCommand  string `yaml:"system_command"`
	WordsPerMinute int    `yaml:"words_per_minute"`
}

// AvatarConfig holds the initial avatar selection.
type AvatarConfig struct {
	Kind    string `yaml:"kind"`
	Emotion string `yaml:"emotion"`
	Image   string `yaml:"image"`
}

// IngestConfig limits uploaded images.
type IngestConfig struct {
	MaxBytes  int64 `yaml:"max_bytes"`
	MaxPixels int64 `yaml:"max_pixels"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			Muted:        false,
			SampleRate:   44100,
		},
		Speech: SpeechConfig{
			Engines:        []string{"openai", "system", "silent"},
			Voice:          "alloy",
			Timeout:        30 * time.Second,
			OpenAIModel:    "tts-1",
			OpenAIFormat:   "mp3",
			EnvFile:        ".env",
			WordsPerMinute: 165,
		},
		Avatar: AvatarConfig{
			Kind:    "procedural-male",
			Emotion: "neutral",
		},
		Ingest: IngestConfig{
			MaxBytes:  10 << 20,
			MaxPixels: 8192 * 8192,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
