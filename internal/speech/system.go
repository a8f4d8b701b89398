package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/lipsync-avatar/internal/logger"
)

// SystemEngine renders speech with the operating system's speech command
// (say on macOS, espeak-ng or espeak elsewhere) into a WAV file and plays it.
type SystemEngine struct {
	command string
	out     Output
	log     *zap.Logger

	lookPath func(string) (string, error)
	run      func(ctx context.Context, stdin string, name string, args ...string) error
}

// NewSystem creates the engine. An empty command selects the platform
// default.
func NewSystem(command string, out Output) *SystemEngine {
	e := &SystemEngine{
		command:  command,
		out:      out,
		log:      logger.Named("speech.system"),
		lookPath: exec.LookPath,
		run:      runCommand,
	}
	return e
}

// Name implements Engine.
func (e *SystemEngine) Name() string { return "system" }

// Available implements Engine.
func (e *SystemEngine) Available() error {
	_, err := e.resolve()
	return err
}

func (e *SystemEngine) resolve() (string, error) {
	candidates := []string{e.command}
	if e.command == "" {
		candidates = defaultCommands(runtime.GOOS)
	}
	for _, c := range candidates {
		if path, err := e.lookPath(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: none of %s found", ErrUnavailable, strings.Join(candidates, ", "))
}

func defaultCommands(goos string) []string {
	if goos == "darwin" {
		return []string{"say"}
	}
	return []string{"espeak-ng", "espeak"}
}

// commandArgs builds the argument list that writes WAV to outPath. Text is
// always fed on stdin so it can never be parsed as an option.
func commandArgs(command, outPath, voiceID string) []string {
	if strings.TrimSuffix(filepath.Base(command), ".exe") == "say" {
		return []string{"-o", outPath, "--file-format=WAVE", "--data-format=LEI16@22050", "-f", "-"}
	}
	args := []string{"-w", outPath}
	switch voiceID {
	case "nova", "shimmer":
		args = append(args, "-v", "en+f3")
	case "echo", "onyx":
		args = append(args, "-v", "en+m3")
	}
	return append(args, "--stdin")
}

// Speak implements Engine. The command runs in the background.
func (e *SystemEngine) Speak(ctx context.Context, req Request, cb Callbacks) (Utterance, error) {
	command, err := e.resolve()
	if err != nil {
		return nil, err
	}

	u, ctx := newUtterance(ctx)
	go func() {
		data, err := e.render(ctx, command, req)
		if err != nil {
			u.done()
			if !u.isStopped() {
				cb.fail(err)
			}
			return
		}
		if u.isStopped() {
			return
		}
		play(u, e.out, data, cb)
	}()
	return u, nil
}

func (e *SystemEngine) render(ctx context.Context, command string, req Request) ([]byte, error) {
	f, err := os.CreateTemp("", "avatar-speech-*.wav")
	if err != nil {
		return nil, fmt.Errorf("system speech: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	args := commandArgs(command, path, req.VoiceID)
	e.log.Debug("running speech command", zap.String("command", command), zap.Strings("args", args))
	if err := e.run(ctx, req.Text, command, args...); err != nil {
		return nil, fmt.Errorf("system speech: %s: %w", filepath.Base(command), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("system speech: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("system speech: %s produced no audio", filepath.Base(command))
	}
	return data, nil
}

func runCommand(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
