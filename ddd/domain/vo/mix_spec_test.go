package vo

import (
	"errors"
	"strings"
	"testing"

	"video-edit-service/pkg/errno"
)

func TestNewMixSpecDefaults(t *testing.T) {
	spec, err := NewMixSpec(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.PrimaryGain != 1.0 || spec.BgmGain != 0.3 {
		t.Fatalf("default gains = %v/%v", spec.PrimaryGain, spec.BgmGain)
	}
}

func TestNewMixSpecRejectsBadGain(t *testing.T) {
	if _, err := NewMixSpec(-0.5, 0.3); !errors.Is(err, errno.ErrInvalidGain) {
		t.Fatalf("negative primary gain should fail, got %v", err)
	}
	if _, err := NewMixSpec(1.0, 11); !errors.Is(err, errno.ErrInvalidGain) {
		t.Fatalf("oversized bgm gain should fail, got %v", err)
	}
}

func TestMixFilterExprBoundsByPrimary(t *testing.T) {
	spec := &MixSpec{PrimaryGain: 0.8, BgmGain: 0.4}
	expr := spec.FilterExpr()

	// duration=first truncates a longer background track and never
	// loops a shorter one; dropped inputs must not renormalize levels.
	for _, want := range []string{
		"[0:a]volume=0.80[a0]",
		"[1:a]volume=0.40[a1]",
		"amix=inputs=2",
		"duration=first",
		"normalize=0",
	} {
		if !strings.Contains(expr, want) {
			t.Fatalf("filter %q missing %q", expr, want)
		}
	}
}

func TestMixFFmpegArgsPassesVideoThrough(t *testing.T) {
	spec := &MixSpec{PrimaryGain: 1, BgmGain: 0.3}
	args := strings.Join(spec.FFmpegArgs("video.mp4", "bgm.m4a", "aac", "192k"), " ")

	if !strings.Contains(args, "-map 0:v -map [aout]") {
		t.Fatalf("args should map primary video and mixed audio: %s", args)
	}
	if !strings.Contains(args, "-c:v copy") {
		t.Fatalf("video stream must not be re-encoded: %s", args)
	}
	if !strings.Contains(args, "-c:a aac -b:a 192k") {
		t.Fatalf("audio must use the fixed codec/bitrate: %s", args)
	}
}
