package entity

import (
	"errors"
	"testing"

	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/errno"
)

func TestNewVideoStartsUploaded(t *testing.T) {
	v := NewVideo("clip.mp4", "uploads/abc_clip.mp4", "https://b.s3/uploads/abc_clip.mp4", 20)
	if v.Status() != vo.StatusUploaded {
		t.Fatalf("new video status = %s", v.Status())
	}
	if v.ID() == "" {
		t.Fatal("id should be generated")
	}
	if v.Duration() != 20 {
		t.Fatalf("duration = %v", v.Duration())
	}
}

func TestAdvanceStageUpdatesArtifact(t *testing.T) {
	v := NewVideo("clip.mp4", "uploads/a.mp4", "https://b.s3/uploads/a.mp4", 20)

	if err := v.AdvanceStage(vo.StatusTrimmed, "trimmed/a.mp4", "https://b.s3/trimmed/a.mp4", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status() != vo.StatusTrimmed {
		t.Fatalf("status = %s", v.Status())
	}
	if v.StorageKey() != "trimmed/a.mp4" {
		t.Fatalf("storage key = %s", v.StorageKey())
	}
	if v.Duration() != 10 {
		t.Fatalf("duration should follow the trimmed artifact, got %v", v.Duration())
	}
}

func TestAdvanceStageRejectedAfterFailure(t *testing.T) {
	v := NewVideo("clip.mp4", "uploads/a.mp4", "https://b.s3/uploads/a.mp4", 20)
	if err := v.MarkFailed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.AdvanceStage(vo.StatusTrimmed, "trimmed/a.mp4", "u", 10)
	if !errors.Is(err, errno.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if v.StorageKey() != "uploads/a.mp4" {
		t.Fatal("failed record must keep its last stored artifact")
	}
}

func TestMarkFailedKeepsArtifact(t *testing.T) {
	v := NewVideo("clip.mp4", "uploads/a.mp4", "https://b.s3/uploads/a.mp4", 20)
	_ = v.AdvanceStage(vo.StatusTrimmed, "trimmed/a.mp4", "https://b.s3/trimmed/a.mp4", 10)

	if err := v.MarkFailed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status() != vo.StatusFailed {
		t.Fatalf("status = %s", v.Status())
	}
	if v.StorageURL() != "https://b.s3/trimmed/a.mp4" {
		t.Fatal("failure must not clear the last good URL")
	}
}
