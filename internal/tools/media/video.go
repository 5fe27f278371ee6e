package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// GetVideoThumbnail extracts the first frame of a video as a small JPEG,
// via ffmpeg.
func GetVideoThumbnail(video []byte) ([]byte, error) {
	timestamp := time.Now().UnixNano()
	videoPath := filepath.Join(tempDir, fmt.Sprintf("video_%d.mp4", timestamp))
	thumbPath := filepath.Join(tempDir, fmt.Sprintf("thumb_%d.jpg", timestamp))

	if err := os.WriteFile(videoPath, video, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(videoPath)

	cmd := exec.Command("ffmpeg", "-i", videoPath,
		"-ss", "00:00:00", "-vf", "scale=32:-1", "-vframes", "1",
		"-f", "image2", thumbPath)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("Error extracting video frame: %w", err)
	}
	defer os.Remove(thumbPath)

	return os.ReadFile(thumbPath)
}
