package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
	"github.com/google/uuid"
)

// ffmpegVideoComposer spawns one encoder subprocess per job. The subprocess
// outcome is bridged into a single-send completion channel, so success and
// failure can never both fire for one job. The wait is bounded by the
// configured encoder timeout; expiry kills the process.
type ffmpegVideoComposer struct {
	logger        outbound.LoggerPort
	workerPool    outbound.TaskDispatcher
	encoderConfig *config.EncoderConfig
}

func NewFFmpegVideoComposer(encoderConfig *config.EncoderConfig, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.VideoComposerPort {
	return &ffmpegVideoComposer{
		logger:        logger,
		workerPool:    workerPool,
		encoderConfig: encoderConfig,
	}
}

func (f *ffmpegVideoComposer) Compose(ctx context.Context, req outbound.ComposeVideoRequest) ([]byte, error) {
	outputFile := filepath.Join(os.TempDir(), uuid.NewString()+".mp4")
	defer func() {
		err := os.Remove(outputFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.logger.Error(err, "error removing encoder output file")
		}
	}()

	encodeCtx, cancel := context.WithTimeout(ctx, f.encoderConfig.Timeout)
	defer cancel()

	cmd := exec.CommandContext(encodeCtx, f.encoderConfig.BinaryPath, f.buildArgs(req, outputFile)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	done := make(chan error, 1)
	err := f.workerPool.Submit(func() {
		done <- cmd.Run()
	})
	if err != nil {
		f.logger.Error(err, "Failed to submit encoder task to worker pool")
		return nil, domain.NewEncodingError(err.Error(), err)
	}

	// The receive happens exactly once and only after the subprocess has
	// terminated; a cancelled context kills the process and the wait still
	// completes, so output cleanup is anchored to termination, not the caller.
	if err := <-done; err != nil {
		if errors.Is(encodeCtx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewTimeoutError("encoder", encodeCtx.Err())
		}
		diagnostics := strings.TrimSpace(stderr.String())
		if diagnostics == "" {
			diagnostics = err.Error()
		}
		f.logger.ErrorWithFields(err, "error creating video", map[string]interface{}{
			"diagnostics": diagnostics,
		})
		return nil, domain.NewEncodingError(diagnostics, err)
	}

	payload, err := os.ReadFile(outputFile)
	if err != nil {
		f.logger.Error(err, "error reading encoder output")
		return nil, domain.NewEncodingError("encoder produced no output", err)
	}
	if len(payload) == 0 {
		return nil, domain.NewEncodingError("encoder produced empty output", nil)
	}

	return payload, nil
}

func (f *ffmpegVideoComposer) buildArgs(req outbound.ComposeVideoRequest, outputFile string) []string {
	return []string{
		"-y",
		"-loop", "1",
		"-framerate", strconv.Itoa(f.encoderConfig.FrameRate),
		"-i", req.ImageFileName,
		"-i", req.AudioFileName,
		"-vf", f.buildFilter(req.CaptionLines),
		"-c:v", "libx264",
		"-c:a", "libopus",
		"-pix_fmt", "yuv420p",
		"-shortest",
		outputFile,
	}
}

// buildFilter drives the zoom factor monotonically from 1.0 toward the
// configured ceiling, anchored at the image center; the curve is a pure
// function of the frame index.
func (f *ffmpegVideoComposer) buildFilter(captionLines []string) string {
	size := f.encoderConfig.OutputWidth
	zoompan := fmt.Sprintf(
		"zoompan=z='min(max(zoom,pzoom)+%g,%g)':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%d",
		f.encoderConfig.ZoomStep, f.encoderConfig.ZoomCeiling, size, size, f.encoderConfig.FrameRate)

	if len(captionLines) == 0 {
		return zoompan
	}

	caption := escapeDrawtext(strings.Join(captionLines, "\n"))
	drawtext := fmt.Sprintf(
		"drawtext=text='%s':fontcolor=white:fontsize=28:box=1:boxcolor=black@0.5:x=(w-text_w)/2:y=h-text_h-40",
		caption)

	return zoompan + "," + drawtext
}

var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`,`, `\,`,
	`;`, `\;`,
	`[`, `\[`,
	`]`, `\]`,
	`%`, `\%`,
)

func escapeDrawtext(text string) string {
	return drawtextEscaper.Replace(text)
}
