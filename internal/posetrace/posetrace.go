// Package posetrace samples ComputePose over a time range so animation can
// be replayed and compared without a window.
package posetrace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lipsync-avatar/internal/avatar"
)

// MaxSamples bounds one trace.
const MaxSamples = 1_000_000

// Output formats.
const (
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
)

var ErrTooManySamples = errors.New("too many samples")

// Options select what to sample.
type Options struct {
	From     float64
	To       float64
	FPS      float64
	Emotion  avatar.Emotion
	Kind     avatar.Kind
	Speaking bool
}

// Validate checks the time range and rate.
func (o Options) Validate() error {
	if math.IsNaN(o.From) || math.IsNaN(o.To) || math.IsInf(o.From, 0) || math.IsInf(o.To, 0) {
		return fmt.Errorf("time range must be finite")
	}
	if o.To < o.From {
		return fmt.Errorf("-to (%g) is before -from (%g)", o.To, o.From)
	}
	if !(o.FPS > 0) || math.IsInf(o.FPS, 0) {
		return fmt.Errorf("-fps must be positive, got %g", o.FPS)
	}
	if n := o.count(); n > MaxSamples {
		return fmt.Errorf("%w: %d > %d", ErrTooManySamples, n, MaxSamples)
	}
	return nil
}

// count is the number of frames in [From, To], both ends included when
// they fall on a frame.
func (o Options) count() int {
	return int(math.Floor((o.To-o.From)*o.FPS+1e-9)) + 1
}

// Sample is one traced frame.
type Sample struct {
	Frame int         `json:"frame" yaml:"frame"`
	T     float64     `json:"t" yaml:"t" jsonschema:"description=Seconds since the session started"`
	Pose  avatar.Pose `json:"pose" yaml:"pose"`
}

// Samples computes the trace. Options must be valid.
func Samples(o Options) []Sample {
	n := o.count()
	out := make([]Sample, n)
	for i := range out {
		t := o.From + float64(i)/o.FPS
		out[i] = Sample{
			Frame: i,
			T:     t,
			Pose:  avatar.ComputePose(t, o.Emotion, o.Kind, o.Speaking),
		}
	}
	return out
}

// Write encodes samples in the given format.
func Write(w io.Writer, format string, samples []Sample) error {
	switch format {
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, s := range samples {
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("encoding frame %d: %w", s.Frame, err)
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(samples); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSONL, FormatYAML)
	}
}

// Schema returns the JSON schema of one Sample.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := r.Reflect(&Sample{})
	return json.MarshalIndent(schema, "", "  ")
}
