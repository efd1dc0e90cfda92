package resolve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var commandContext = exec.CommandContext

// Transcoder converts an audio file into an Ogg file.
type Transcoder interface {
	Transcode(ctx context.Context, source, destination string) error
}

// FFmpeg transcodes with the ffmpeg command-line tool, leaving codec choice
// to ffmpeg's defaults for the Ogg container.
type FFmpeg struct {
	binary string
}

// NewFFmpeg returns a transcoder running binary, or "ffmpeg" when empty.
func NewFFmpeg(binary string) *FFmpeg {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary}
}

// Binary returns the command the transcoder runs.
func (f *FFmpeg) Binary() string { return f.binary }

// Transcode writes destination through a temporary sibling so a failed or
// interrupted run never leaves a partial file at the cache path.
func (f *FFmpeg) Transcode(ctx context.Context, source, destination string) error {
	if source == "" || destination == "" {
		return errors.New("transcode: source and destination required")
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("create conversion directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destination), "."+filepath.Base(destination)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create conversion temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", source, "-f", "ogg", tmpPath}
	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &ConversionError{
			Source:      source,
			Destination: destination,
			Output:      strings.TrimSpace(string(output)),
			Err:         err,
		}
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("set converted file mode: %w", err)
	}
	if err := os.Rename(tmpPath, destination); err != nil {
		return fmt.Errorf("move converted file into place: %w", err)
	}
	return nil
}

var _ Transcoder = (*FFmpeg)(nil)
