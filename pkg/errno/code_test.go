package errno

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapfKeepsSentinelMatching(t *testing.T) {
	err := ErrInvalidTimeRange.Wrapf("start=%v end=%v", 5.0, 2.0)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatal("wrapped error should match its sentinel")
	}
	if errors.Is(err, ErrEngineFailed) {
		t.Fatal("wrapped error should not match other sentinels")
	}
	if want := "Invalid time range: start=5 end=2"; err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(ErrVideoNotFound); got != 20010 {
		t.Fatalf("CodeOf sentinel = %d", got)
	}
	if got := CodeOf(ErrEngineFailed.Wrapf("exit status 1")); got != 20020 {
		t.Fatalf("CodeOf wrapped = %d", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrInternalServer.Code {
		t.Fatalf("CodeOf untyped = %d", got)
	}
}

func TestKindPredicates(t *testing.T) {
	if !IsValidation(ErrInvalidCue.Wrapf("end before start")) {
		t.Fatal("cue error should be a validation error")
	}
	if IsValidation(ErrStorageFailed) {
		t.Fatal("storage error is not a validation error")
	}
	if !IsNotFound(ErrSourceNotFound.Wrapf("missing.mp4")) {
		t.Fatal("source-not-found should be a not-found error")
	}
	if IsNotFound(ErrEngineFailed) {
		t.Fatal("engine error is not a not-found error")
	}
}
