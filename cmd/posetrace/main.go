// Command posetrace prints the avatar pose sampled over a time range.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
	"github.com/Faultbox/lipsync-avatar/internal/posetrace"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type Config struct {
	From     float64
	To       float64
	FPS      float64
	Emotion  string
	Kind     string
	Speaking bool
	Format   string
	Schema   bool
}

func (c Config) Validate() error {
	if c.Schema {
		return nil
	}
	if c.Format != posetrace.FormatJSONL && c.Format != posetrace.FormatYAML {
		return fmt.Errorf("-format must be %s or %s", posetrace.FormatJSONL, posetrace.FormatYAML)
	}
	return c.options().Validate()
}

func (c Config) options() posetrace.Options {
	return posetrace.Options{
		From:     c.From,
		To:       c.To,
		FPS:      c.FPS,
		Emotion:  avatar.ParseEmotion(c.Emotion),
		Kind:     avatar.ParseKind(c.Kind),
		Speaking: c.Speaking,
	}
}

func defaultConfig() Config {
	return Config{
		From:    0,
		To:      5,
		FPS:     30,
		Emotion: string(avatar.Neutral),
		Kind:    string(avatar.ProceduralMale),
		Format:  posetrace.FormatJSONL,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()

	fs.SetOutput(os.Stderr)

	fs.Float64Var(&cfg.From, "from", cfg.From, "Start time in seconds")
	fs.Float64Var(&cfg.To, "to", cfg.To, "End time in seconds (inclusive)")
	fs.Float64Var(&cfg.FPS, "fps", cfg.FPS, "Samples per second")
	fs.StringVar(&cfg.Emotion, "emotion", cfg.Emotion, "Emotion (neutral, happy, sad, angry, surprised)")
	fs.StringVar(&cfg.Kind, "kind", cfg.Kind, "Avatar kind (male, female, custom)")
	fs.BoolVar(&cfg.Speaking, "speaking", false, "Sample while speaking")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format (jsonl or yaml)")
	fs.BoolVar(&cfg.Schema, "schema", false, "Print the JSON schema of one sample and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags]\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "\nExamples:")
		fmt.Fprintln(fs.Output(), "  posetrace -to 2 -fps 60 -emotion happy -speaking")
		fmt.Fprintln(fs.Output(), "  posetrace -kind custom -format yaml")
		fmt.Fprintln(fs.Output(), "  posetrace -schema")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

func run(cfg Config, out io.Writer) error {
	w := bufio.NewWriter(out)

	if cfg.Schema {
		b, err := posetrace.Schema()
		if err != nil {
			return fmt.Errorf("generating schema: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(b)); err != nil {
			return err
		}
		return w.Flush()
	}

	if err := posetrace.Write(w, cfg.Format, posetrace.Samples(cfg.options())); err != nil {
		return err
	}
	return w.Flush()
}
