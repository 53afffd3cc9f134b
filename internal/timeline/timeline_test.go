package timeline

import (
	"testing"
	"time"
)

func TestClipSelectionValidate(t *testing.T) {
	cases := []struct {
		name    string
		clip    ClipSelection
		wantErr bool
	}{
		{"valid", ClipSelection{SourcePath: "a.mp4", StartTime: 0, EndTime: 5}, false},
		{"empty path", ClipSelection{StartTime: 0, EndTime: 5}, true},
		{"negative start", ClipSelection{SourcePath: "a.mp4", StartTime: -1, EndTime: 5}, true},
		{"zero duration", ClipSelection{SourcePath: "a.mp4", StartTime: 5, EndTime: 5}, true},
		{"inverted range", ClipSelection{SourcePath: "a.mp4", StartTime: 8, EndTime: 5}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.clip.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClipSelectionDuration(t *testing.T) {
	clip := ClipSelection{SourcePath: "b.mp4", StartTime: 10, EndTime: 12.5}
	if got := clip.Duration(); got != 2500*time.Millisecond {
		t.Fatalf("Duration = %v, want 2.5s", got)
	}
	if got := clip.Seconds(); got != 2.5 {
		t.Fatalf("Seconds = %v, want 2.5", got)
	}
}

func TestExportRequestValidate(t *testing.T) {
	valid := ExportRequest{
		Clips:      []ClipSelection{{SourcePath: "a.mp4", EndTime: 5}},
		AudioPath:  "music.mp3",
		OutputPath: "out.mp4",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := valid
	empty.Clips = nil
	if err := empty.Validate(); err == nil {
		t.Fatal("expected error for empty clips")
	}

	noAudio := valid
	noAudio.AudioPath = " "
	if err := noAudio.Validate(); err == nil {
		t.Fatal("expected error for empty audio path")
	}

	noOutput := valid
	noOutput.OutputPath = ""
	if err := noOutput.Validate(); err == nil {
		t.Fatal("expected error for empty output path")
	}
}
