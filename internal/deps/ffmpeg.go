package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

const encoderListTimeout = 10 * time.Second

// ResolveFFmpegPath returns the configured ffmpeg binary, or "ffmpeg" when
// none is set.
func ResolveFFmpegPath(configured string) string {
	if binary := strings.TrimSpace(configured); binary != "" {
		return binary
	}
	return "ffmpeg"
}

// CheckFFmpeg reports whether binary is on PATH and can write Ogg Vorbis.
// Fuzzy pool matches are transcoded with it, so a missing encoder fails the
// check even when the binary itself resolves.
func CheckFFmpeg(ctx context.Context, binary string) Status {
	status := LookupBinary("FFmpeg", ResolveFFmpegPath(binary))
	if !status.Available {
		return status
	}

	listCtx, cancel := context.WithTimeout(ctx, encoderListTimeout)
	defer cancel()
	output, err := commandContext(listCtx, status.Path, "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		status.Available = false
		status.Detail = fmt.Sprintf("listing encoders failed: %v", err)
		return status
	}
	if !hasVorbisEncoder(string(output)) {
		status.Available = false
		status.Detail = "no vorbis encoder available"
		return status
	}
	return status
}

func hasVorbisEncoder(listing string) bool {
	for line := range strings.Lines(listing) {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "A") {
			continue
		}
		if fields[1] == "libvorbis" || fields[1] == "vorbis" {
			return true
		}
	}
	return false
}
