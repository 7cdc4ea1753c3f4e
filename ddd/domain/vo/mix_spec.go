package vo

import (
	"fmt"

	"video-edit-service/pkg/errno"
)

// MixSpec 背景音乐混音参数值对象
type MixSpec struct {
	PrimaryGain float64
	BgmGain     float64
}

// NewMixSpec 创建混音参数，零值增益回落到默认值
func NewMixSpec(primaryGain, bgmGain float64) (*MixSpec, error) {
	if primaryGain == 0 {
		primaryGain = 1.0
	}
	if bgmGain == 0 {
		bgmGain = 0.3
	}
	spec := &MixSpec{PrimaryGain: primaryGain, BgmGain: bgmGain}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate 校验增益
func (s *MixSpec) Validate() error {
	if s.PrimaryGain < 0 || s.PrimaryGain > 10 {
		return errno.ErrInvalidGain.Wrapf("primary_gain=%v out of [0,10]", s.PrimaryGain)
	}
	if s.BgmGain < 0 || s.BgmGain > 10 {
		return errno.ErrInvalidGain.Wrapf("bgm_gain=%v out of [0,10]", s.BgmGain)
	}
	return nil
}

// FilterExpr 获取混音滤镜表达式
//
// Input 0 is the primary video, input 1 the background track. Both
// audio streams are gain-scaled then summed; duration=first bounds the
// result by the primary's duration, so a longer background track is
// truncated and a shorter one is never looped.
func (s *MixSpec) FilterExpr() string {
	return fmt.Sprintf(
		"[0:a]volume=%.2f[a0];[1:a]volume=%.2f[a1];[a0][a1]amix=inputs=2:duration=first:dropout_transition=0:normalize=0[aout]",
		s.PrimaryGain, s.BgmGain,
	)
}

// FFmpegArgs 获取FFmpeg参数（不含输出路径）
//
// The video stream is passed through untouched; the mixed audio track
// is re-encoded with a fixed codec/bitrate for playback compatibility.
func (s *MixSpec) FFmpegArgs(videoPath, audioPath, audioCodec, audioRate string) []string {
	return []string{
		"-i", videoPath,
		"-i", audioPath,
		"-filter_complex", s.FilterExpr(),
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", audioCodec,
		"-b:a", audioRate,
	}
}
