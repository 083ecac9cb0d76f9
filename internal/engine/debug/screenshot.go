// Package debug provides developer tooling around rendered frames.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/nsengine/internal/engine/errs"
)

// ScreenshotCapture writes frames to timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture that writes <prefix>_<time>.png
// into outputDir. An empty outputDir means the working directory.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// Capture encodes img and returns the path it was written to.
func (sc *ScreenshotCapture) Capture(img image.Image) (string, error) {
	const op = "debug.Capture"

	if img == nil || img.Bounds().Empty() {
		return "", errs.New(op, errs.CodeInvalidState, errs.Warning, "empty frame")
	}
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", errs.Wrap(op, errs.CodeFileIO, errs.Warning, err)
		}
	}

	filename := sc.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", errs.Wrap(op, errs.CodeFileIO, errs.Warning, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", errs.Wrap(op, errs.CodeFileIO, errs.Warning, fmt.Errorf("encoding PNG: %w", err))
	}
	return filename, nil
}

// Filename generates the path the next capture will use.
func (sc *ScreenshotCapture) Filename() string {
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, sc.now().Format("2006-01-02_15-04-05"))
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
