package gateway

import (
	"context"

	"video-edit-service/ddd/domain/vo"
)

// MediaEngine 媒体引擎网关
//
// Every call is a blocking external-process invocation; it runs to
// completion and no timeout is enforced at this layer.
type MediaEngine interface {
	// Trim extracts the spec's time sub-range of inputPath into outputPath.
	Trim(ctx context.Context, inputPath, outputPath string, spec vo.TrimSpec) error

	// MixAudio merges audioPath into videoPath's audio track at the
	// spec's gains; the result never outlasts the video.
	MixAudio(ctx context.Context, videoPath, audioPath, outputPath string, spec vo.MixSpec) error

	// OverlaySubtitles burns the track's cues into the picture. All cue
	// fonts must be resolved to local files before the call.
	OverlaySubtitles(ctx context.Context, inputPath, outputPath string, track vo.SubtitleTrack) error

	// ProbeDuration returns the media duration in seconds.
	ProbeDuration(ctx context.Context, path string) (float64, error)

	// Thumbnail captures a single frame at offsetSec into outputPath.
	Thumbnail(ctx context.Context, inputPath, outputPath string, offsetSec float64) error
}
