package vo

import (
	"fmt"

	"video-edit-service/pkg/errno"
)

// TrimMode 剪辑编码模式
type TrimMode string

const (
	// TrimModeReencode re-encodes the cut range; frame accurate, slower.
	TrimModeReencode TrimMode = "reencode"
	// TrimModeCopy remuxes without re-encoding; fast, but the cut snaps
	// to the keyframe preceding the requested start.
	TrimModeCopy TrimMode = "copy"
)

// IsValid 检查模式是否有效
func (m TrimMode) IsValid() bool {
	return m == TrimModeReencode || m == TrimModeCopy
}

// TrimSpec 时间范围剪辑参数值对象
type TrimSpec struct {
	StartTime float64
	EndTime   float64
	Mode      TrimMode
}

// NewTrimSpec 创建剪辑参数
func NewTrimSpec(startTime, endTime float64, mode TrimMode) (*TrimSpec, error) {
	if mode == "" {
		mode = TrimModeReencode
	}
	spec := &TrimSpec{StartTime: startTime, EndTime: endTime, Mode: mode}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate 校验时间范围
func (s *TrimSpec) Validate() error {
	if s.StartTime < 0 {
		return errno.ErrInvalidTimeRange.Wrapf("start_time=%v must be >= 0", s.StartTime)
	}
	if s.EndTime <= s.StartTime {
		return errno.ErrInvalidTimeRange.Wrapf("end_time=%v must be > start_time=%v", s.EndTime, s.StartTime)
	}
	if !s.Mode.IsValid() {
		return errno.ErrInvalidParam.Wrapf("trim mode %q", s.Mode)
	}
	return nil
}

// Duration 剪辑时长（秒）
func (s *TrimSpec) Duration() float64 {
	return s.EndTime - s.StartTime
}

// FFmpegArgs 获取FFmpeg参数（不含输出路径）
//
// Reencode keeps the original service's argument shape: -i before -ss
// so the seek decodes from the file head and cuts exactly. Copy mode
// seeks before the input and copies both streams.
func (s *TrimSpec) FFmpegArgs(inputPath, videoCodec, audioCodec string) []string {
	start := fmt.Sprintf("%.3f", s.StartTime)
	duration := fmt.Sprintf("%.3f", s.Duration())

	if s.Mode == TrimModeCopy {
		return []string{
			"-ss", start,
			"-i", inputPath,
			"-t", duration,
			"-c", "copy",
			"-avoid_negative_ts", "make_zero",
		}
	}
	return []string{
		"-i", inputPath,
		"-ss", start,
		"-t", duration,
		"-c:v", videoCodec,
		"-c:a", audioCodec,
	}
}
