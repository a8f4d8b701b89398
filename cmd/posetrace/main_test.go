package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("posetrace", flag.ContinueOnError)
	cfg, err := parseFlags(fs, nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.FPS != 30 || cfg.To != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("posetrace", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-from", "1",
		"-to", "2",
		"-fps", "4",
		"-emotion", "sad",
		"-kind", "female",
		"-speaking",
		"-format", "yaml",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	opts := cfg.options()
	if opts.Emotion != "sad" || opts.Kind != "procedural-female" || !opts.Speaking {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if cfg.Format != "yaml" {
		t.Fatalf("Format=%q, want yaml", cfg.Format)
	}
}

func TestParseFlags_RejectsArgs(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("posetrace", flag.ContinueOnError)
	if _, err := parseFlags(fs, []string{"extra"}); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Format = "csv"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected format error")
	}

	cfg = defaultConfig()
	cfg.FPS = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected fps error")
	}

	cfg.Schema = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("schema mode ignores sampling flags: %v", err)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.To = 1
	cfg.FPS = 2

	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := strings.Count(out.String(), "\n"); n != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", n, out.String())
	}

	out.Reset()
	cfg.Schema = true
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run schema: %v", err)
	}
	if !strings.Contains(out.String(), `"properties"`) {
		t.Fatalf("schema output missing properties:\n%s", out.String())
	}
}
