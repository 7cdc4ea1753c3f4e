package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/config"
	"video-edit-service/pkg/errno"
)

// stubBinary writes a shell script that records its arguments and
// behaves like the named outcome.
func stubBinary(t *testing.T, script string) (binPath, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	binPath = filepath.Join(dir, "ffmpeg-stub")
	argsFile = filepath.Join(dir, "args.txt")
	body := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + argsFile + "\n" + script + "\n"
	if err := os.WriteFile(binPath, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return binPath, argsFile
}

func recordedArgs(t *testing.T, argsFile string) []string {
	t.Helper()
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("stub never ran: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func testEngineConfig(bin string) config.EngineConfig {
	return config.EngineConfig{
		FFmpegPath:  bin,
		FFprobePath: bin,
		VideoCodec:  "libx264",
		AudioCodec:  "aac",
		AudioRate:   "192k",
	}
}

func TestTrimAppendsOverwriteAndOutput(t *testing.T) {
	bin, argsFile := stubBinary(t, "exit 0")
	e := NewFFmpegEngine(testEngineConfig(bin))

	spec := vo.TrimSpec{StartTime: 1.5, EndTime: 4, Mode: vo.TrimModeReencode}
	if err := e.Trim(context.Background(), "/in.mp4", "/out.mp4", spec); err != nil {
		t.Fatalf("Trim: %v", err)
	}

	got := recordedArgs(t, argsFile)
	want := []string{
		"-i", "/in.mp4",
		"-ss", "1.500",
		"-t", "2.500",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", "/out.mp4",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("args = %v, want %v", got, want)
	}
}

func TestMixAudioBuildsFilterGraph(t *testing.T) {
	bin, argsFile := stubBinary(t, "exit 0")
	e := NewFFmpegEngine(testEngineConfig(bin))

	spec := vo.MixSpec{PrimaryGain: 1.0, BgmGain: 0.3}
	if err := e.MixAudio(context.Background(), "/v.mp4", "/a.mp3", "/out.mp4", spec); err != nil {
		t.Fatalf("MixAudio: %v", err)
	}

	joined := strings.Join(recordedArgs(t, argsFile), " ")
	for _, fragment := range []string{
		"-filter_complex",
		"amix=inputs=2:duration=first",
		"-map 0:v",
		"-map [aout]",
		"-c:v copy",
		"-b:a 192k",
	} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("args missing %q: %s", fragment, joined)
		}
	}
}

func TestRunFailureCarriesStderrPreview(t *testing.T) {
	long := strings.Repeat("x", 300)
	bin, _ := stubBinary(t, "echo "+long+" >&2; exit 1")
	e := NewFFmpegEngine(testEngineConfig(bin))

	err := e.Trim(context.Background(), "/in.mp4", "/out.mp4", vo.TrimSpec{StartTime: 0, EndTime: 1, Mode: vo.TrimModeReencode})
	if !errors.Is(err, errno.ErrEngineFailed) {
		t.Fatalf("err = %v, want ErrEngineFailed", err)
	}
	msg := err.Error()
	if strings.Contains(msg, long) {
		t.Fatalf("error carries unbounded stderr: %d bytes", len(msg))
	}
	if !strings.Contains(msg, strings.Repeat("x", stderrPreviewLen)) {
		t.Fatalf("error lost the stderr preview: %s", msg)
	}
}

func TestStderrPreviewKeepsRunesIntact(t *testing.T) {
	// 多字节字符横跨截断点时整字符丢弃
	long := strings.Repeat("视", 100)
	got := preview(long)
	if !utf8.ValidString(got) {
		t.Fatalf("preview split a rune: %q", got)
	}
	if len(got) > stderrPreviewLen {
		t.Fatalf("preview too long: %d bytes", len(got))
	}
	if got != strings.Repeat("视", 66) {
		t.Fatalf("preview = %d bytes, want 66 whole runes", len(got))
	}
}

func TestProbeDurationParsesOutput(t *testing.T) {
	bin, _ := stubBinary(t, "echo 12.345")
	e := NewFFmpegEngine(testEngineConfig(bin))

	got, err := e.ProbeDuration(context.Background(), "/in.mp4")
	if err != nil {
		t.Fatalf("ProbeDuration: %v", err)
	}
	if got != 12.345 {
		t.Fatalf("duration = %v, want 12.345", got)
	}
}

func TestProbeDurationRejectsGarbage(t *testing.T) {
	bin, _ := stubBinary(t, "echo N/A")
	e := NewFFmpegEngine(testEngineConfig(bin))

	if _, err := e.ProbeDuration(context.Background(), "/in.mp4"); !errors.Is(err, errno.ErrEngineFailed) {
		t.Fatalf("err = %v, want ErrEngineFailed", err)
	}
}

func TestCancelledContextSurfacesAsContextError(t *testing.T) {
	bin, _ := stubBinary(t, "sleep 5")
	e := NewFFmpegEngine(testEngineConfig(bin))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Trim(ctx, "/in.mp4", "/out.mp4", vo.TrimSpec{StartTime: 0, EndTime: 1, Mode: vo.TrimModeReencode})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
