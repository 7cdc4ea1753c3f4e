package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"unicode/utf8"

	"video-edit-service/ddd/domain/gateway"
	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
	"video-edit-service/pkg/logger"
)

// stderr preview length attached to engine failures; full output goes
// to the log only.
const stderrPreviewLen = 200

// FFmpegEngine 基于本地 ffmpeg/ffprobe 进程的媒体引擎实现
type FFmpegEngine struct {
	cfg config.EngineConfig
}

var _ gateway.MediaEngine = (*FFmpegEngine)(nil)

func NewFFmpegEngine(cfg config.EngineConfig) *FFmpegEngine {
	return &FFmpegEngine{cfg: cfg}
}

// Trim 剪辑时间范围
func (e *FFmpegEngine) Trim(ctx context.Context, inputPath, outputPath string, spec vo.TrimSpec) error {
	args := spec.FFmpegArgs(inputPath, e.cfg.VideoCodec, e.cfg.AudioCodec)
	return e.runFFmpeg(ctx, "trim", args, outputPath)
}

// MixAudio 混入背景音轨
func (e *FFmpegEngine) MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, spec vo.MixSpec) error {
	args := spec.FFmpegArgs(videoPath, audioPath, e.cfg.AudioCodec, e.cfg.AudioRate)
	return e.runFFmpeg(ctx, "mix", args, outputPath)
}

// OverlaySubtitles 烧录字幕
func (e *FFmpegEngine) OverlaySubtitles(ctx context.Context, inputPath, outputPath string, track vo.SubtitleTrack) error {
	filter, err := track.FilterExpr()
	if err != nil {
		return err
	}
	args := []string{
		"-i", inputPath,
		"-vf", filter,
		"-c:v", e.cfg.VideoCodec,
		"-c:a", "copy",
	}
	return e.runFFmpeg(ctx, "subtitles", args, outputPath)
}

// ProbeDuration 获取媒体时长（秒）
func (e *FFmpegEngine) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, e.cfg.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, errno.ErrEngineFailed.Wrapf("ffprobe %s: %v", path, err)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, errno.ErrEngineFailed.Wrapf("ffprobe %s: unparsable duration %q", path, out)
	}
	return val, nil
}

// Thumbnail 截取单帧
func (e *FFmpegEngine) Thumbnail(ctx context.Context, inputPath, outputPath string, offsetSec float64) error {
	args := []string{
		"-ss", fmt.Sprintf("%.3f", offsetSec),
		"-i", inputPath,
		"-frames:v", "1",
		"-q:v", "2",
	}
	return e.runFFmpeg(ctx, "thumbnail", args, outputPath)
}

// runFFmpeg invokes ffmpeg with -y and the output path appended. On a
// non-zero exit the error carries a bounded stderr preview; the full
// tail is only logged.
func (e *FFmpegEngine) runFFmpeg(ctx context.Context, op string, args []string, outputPath string) error {
	full := append(append([]string{}, args...), "-y", outputPath)
	cmd := exec.CommandContext(ctx, e.cfg.FFmpegPath, full...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("Invoking ffmpeg", map[string]interface{}{
		"op":      op,
		"command": e.cfg.FFmpegPath + " " + strings.Join(full, " "),
	})

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		output := stderr.String()
		logger.Error("ffmpeg failed", map[string]interface{}{
			"op":     op,
			"error":  err.Error(),
			"stderr": tail(output, 4000),
		})
		return errno.ErrEngineFailed.Wrapf("%s: %v: %s", op, err, preview(output))
	}
	return nil
}

// preview truncates on a rune boundary; ffmpeg diagnostics may carry
// non-ASCII filenames and a byte slice could split one mid-sequence.
func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= stderrPreviewLen {
		return s
	}
	cut := stderrPreviewLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func tail(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
