package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

var tempDir = os.TempDir()

// ImageToWebp converts a still image to a 512x512 webp suitable for a
// sticker, padding with transparency to keep the aspect ratio.
func ImageToWebp(image []byte) ([]byte, error) {
	timestamp := time.Now().UnixNano()
	inputPath := filepath.Join(tempDir, fmt.Sprintf("sticker_in_%d", timestamp))
	outputPath := filepath.Join(tempDir, fmt.Sprintf("sticker_out_%d.webp", timestamp))

	if err := os.WriteFile(inputPath, image, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(inputPath)

	cmd := exec.Command("ffmpeg", "-i", inputPath,
		"-vf", "scale=512:512:force_original_aspect_ratio=decrease,pad=512:512:-1:-1:color=0x00000000",
		"-vcodec", "libwebp", outputPath)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("Error converting image to webp: %w", err)
	}
	defer os.Remove(outputPath)

	return os.ReadFile(outputPath)
}
