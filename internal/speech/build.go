package speech

import (
	"fmt"
	"time"
)

// Options collects what Build needs to construct engines by name.
type Options struct {
	APIKey         string
	OpenAIModel    string
	OpenAIFormat   string
	Timeout        time.Duration
	SystemCommand  string
	WordsPerMinute int
	Output         Output
	Notify         func(string)
}

// Build creates a fallback chain from engine names in order. Known names
// are openai, system and silent.
func Build(names []string, opts Options) (*Fallback, error) {
	if len(names) == 0 {
		return nil, ErrNoEngine
	}
	engines := make([]Engine, 0, len(names))
	for _, name := range names {
		switch name {
		case "openai":
			engines = append(engines, NewOpenAI(OpenAIConfig{
				APIKey:  opts.APIKey,
				Model:   opts.OpenAIModel,
				Format:  opts.OpenAIFormat,
				Timeout: opts.Timeout,
			}, opts.Output))
		case "system":
			engines = append(engines, NewSystem(opts.SystemCommand, opts.Output))
		case "silent":
			engines = append(engines, NewSilent(opts.WordsPerMinute))
		default:
			return nil, fmt.Errorf("unknown speech engine %q", name)
		}
	}
	return NewFallback(opts.Notify, engines...), nil
}
