package vo

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   VideoStatus
		to     VideoStatus
		wantOK bool
	}{
		{"uploadedToTrimmed", StatusUploaded, StatusTrimmed, true},
		{"uploadedToSubtitled", StatusUploaded, StatusSubtitled, true},
		{"trimmedToBgmAdded", StatusTrimmed, StatusBgmAdded, true},
		{"bgmAddedToTrimmed", StatusBgmAdded, StatusTrimmed, true},
		{"subtitledRerun", StatusSubtitled, StatusSubtitled, true},
		{"anyToFailed", StatusTrimmed, StatusFailed, true},
		{"failedIsTerminal", StatusFailed, StatusTrimmed, false},
		{"failedStaysFailed", StatusFailed, StatusFailed, false},
		{"nothingBackToUploaded", StatusTrimmed, StatusUploaded, false},
		{"unknownTarget", StatusUploaded, VideoStatus("queued"), false},
		{"unknownSource", VideoStatus("queued"), StatusTrimmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.wantOK {
				t.Fatalf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.wantOK)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []VideoStatus{StatusUploaded, StatusTrimmed, StatusBgmAdded, StatusSubtitled, StatusFailed} {
		if !s.IsValid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if VideoStatus("processing").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}
