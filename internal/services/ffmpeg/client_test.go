package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubExecutor struct {
	lines []string
	err   error
	calls int
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	s.calls++
	cloned := append([]string(nil), args...)
	s.args = append(s.args, cloned)
	for _, line := range s.lines {
		onOutput(line)
	}
	return s.err
}

func hasFlag(args []string, flag, value string) bool {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) && args[i+1] == value {
			return true
		}
	}
	return false
}

func contains(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}

func TestTrimBuildsSeekAndEncodeArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, err := New("ffmpeg", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	spec := TrimSpec{Source: "/media/a.mp4", Start: 1.5, Duration: 3.25, Dest: "/scratch/segment-000.ts"}
	if err := client.Trim(context.Background(), spec); err != nil {
		t.Fatalf("Trim returned error: %v", err)
	}
	if exec.calls != 1 {
		t.Fatalf("expected 1 invocation, got %d", exec.calls)
	}

	args := exec.args[0]
	if !hasFlag(args, "-ss", "1.500") {
		t.Fatalf("expected seek flag, got %v", args)
	}
	if !hasFlag(args, "-t", "3.250") {
		t.Fatalf("expected duration flag, got %v", args)
	}
	if !hasFlag(args, "-i", "/media/a.mp4") {
		t.Fatalf("expected input flag, got %v", args)
	}
	if !hasFlag(args, "-c:v", "libx264") || !hasFlag(args, "-c:a", "aac") {
		t.Fatalf("expected re-encode codecs, got %v", args)
	}
	if !hasFlag(args, "-f", "mpegts") {
		t.Fatalf("expected transport-stream container, got %v", args)
	}
	if !contains(args, "-y") {
		t.Fatalf("expected overwrite flag, got %v", args)
	}
	if args[len(args)-2] != "/scratch/segment-000.ts" && args[len(args)-1] != "/scratch/segment-000.ts" {
		t.Fatalf("expected destination at tail of args, got %v", args)
	}
}

func TestTrimValidatesSpec(t *testing.T) {
	client, err := New("ffmpeg", WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.Trim(context.Background(), TrimSpec{Dest: "d", Duration: 1}); err == nil {
		t.Fatal("expected error for missing source")
	}
	if err := client.Trim(context.Background(), TrimSpec{Source: "s", Duration: 1}); err == nil {
		t.Fatal("expected error for missing destination")
	}
	if err := client.Trim(context.Background(), TrimSpec{Source: "s", Dest: "d", Duration: 0}); err == nil {
		t.Fatal("expected error for non-positive duration")
	}
}

func TestMuxBuildsConcatArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, err := New("ffmpeg", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	spec := MuxSpec{ManifestPath: "/scratch/concat.txt", AudioPath: "/media/music.mp3", OutputPath: "/out/final.mp4"}
	if err := client.Mux(context.Background(), spec); err != nil {
		t.Fatalf("Mux returned error: %v", err)
	}

	args := exec.args[0]
	if !hasFlag(args, "-f", "concat") {
		t.Fatalf("expected concat demuxer, got %v", args)
	}
	if !hasFlag(args, "-safe", "0") {
		t.Fatalf("expected safe flag for absolute manifest paths, got %v", args)
	}
	if !hasFlag(args, "-i", "/scratch/concat.txt") || !hasFlag(args, "-i", "/media/music.mp3") {
		t.Fatalf("expected both inputs, got %v", args)
	}
	if !hasFlag(args, "-map", "0:v") || !hasFlag(args, "-map", "1:a") {
		t.Fatalf("expected explicit stream selection, got %v", args)
	}
	if !contains(args, "-shortest") {
		t.Fatalf("expected shortest-stream truncation, got %v", args)
	}
	if !contains(args, "-y") {
		t.Fatalf("expected overwrite flag, got %v", args)
	}
	if !contains(args, "/out/final.mp4") {
		t.Fatalf("expected output path, got %v", args)
	}
}

func TestRunErrorsCarryOutputTail(t *testing.T) {
	exec := &stubExecutor{
		lines: []string{"frame=1", "Invalid data found when processing input"},
		err:   errors.New("exit status 1"),
	}
	client, err := New("ffmpeg", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	trimErr := client.Trim(context.Background(), TrimSpec{Source: "s.mp4", Dest: "d.ts", Duration: 2})
	if trimErr == nil {
		t.Fatal("expected error from executor")
	}
	if !strings.Contains(trimErr.Error(), "Invalid data found") {
		t.Fatalf("expected output tail in error, got %v", trimErr)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestTailBufferKeepsLastLines(t *testing.T) {
	tail := newTailBuffer(2)
	tail.add("one")
	tail.add("")
	tail.add("two")
	tail.add("three")
	if got := tail.String(); got != "two; three" {
		t.Fatalf("tail = %q, want %q", got, "two; three")
	}
}
