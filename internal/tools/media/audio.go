package media

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// GetAudioDuration reports the length of an audio payload in whole seconds,
// via ffprobe.
func GetAudioDuration(audio []byte) (uint32, error) {
	filename := filepath.Join(tempDir, fmt.Sprintf("audio_%d", time.Now().UnixNano()))
	if err := os.WriteFile(filename, audio, 0644); err != nil {
		return 0, err
	}
	defer os.Remove(filename)

	cmd := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filename)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	// ffprobe prints seconds with a fractional part, e.g. "12.345600".
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("Error parsing ffprobe duration: %w", err)
	}
	return uint32(math.Round(duration)), nil
}
