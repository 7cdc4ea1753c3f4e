package vo

import (
	"errors"
	"strings"
	"testing"

	"video-edit-service/pkg/errno"
)

func TestNewTrimSpecValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		end     float64
		wantErr bool
	}{
		{"validRange", 5, 15, false},
		{"zeroStart", 0, 10, false},
		{"negativeStart", -1, 10, true},
		{"endEqualsStart", 5, 5, true},
		{"endBeforeStart", 10, 5, true},
		{"zeroDuration", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewTrimSpec(tt.start, tt.end, TrimModeReencode)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, errno.ErrInvalidTimeRange) {
					t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Duration() != tt.end-tt.start {
				t.Fatalf("duration = %v, want %v", spec.Duration(), tt.end-tt.start)
			}
		})
	}
}

func TestTrimSpecDefaultsToReencode(t *testing.T) {
	spec, err := NewTrimSpec(1, 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Mode != TrimModeReencode {
		t.Fatalf("mode = %q, want reencode", spec.Mode)
	}
}

func TestTrimSpecFFmpegArgs(t *testing.T) {
	spec := &TrimSpec{StartTime: 5, EndTime: 15, Mode: TrimModeReencode}
	args := strings.Join(spec.FFmpegArgs("in.mp4", "libx264", "aac"), " ")
	if args != "-i in.mp4 -ss 5.000 -t 10.000 -c:v libx264 -c:a aac" {
		t.Fatalf("unexpected reencode args: %s", args)
	}

	spec.Mode = TrimModeCopy
	args = strings.Join(spec.FFmpegArgs("in.mp4", "libx264", "aac"), " ")
	if !strings.HasPrefix(args, "-ss 5.000 -i in.mp4 -t 10.000 -c copy") {
		t.Fatalf("unexpected copy args: %s", args)
	}
}
