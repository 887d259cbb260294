package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sha256 of "hello\n".
const helloDigest = "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03"

func TestCalculate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "avatar.txt")
	if err := os.WriteFile(file, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	text := "alice@example.com"
	empty := ""

	tests := []struct {
		name    string
		config  Config
		want    *string
		wantErr bool
	}{
		{name: "manual", config: Config{Mode: ModeManual, Value: &text}, want: &text},
		{name: "manual empty text", config: Config{Mode: ModeManual, Value: &empty}, want: &empty},
		{name: "default mode is manual", config: Config{Value: &text}, want: &text},
		{name: "manual without value", config: Config{Mode: ModeManual}, wantErr: true},
		{name: "random", config: Config{Mode: ModeRandom, Value: &text}, want: nil},
		{name: "filepath", config: Config{Mode: ModeFilepath, Path: file}, want: &file},
		{name: "filepath without path", config: Config{Mode: ModeFilepath}, wantErr: true},
		{name: "content", config: Config{Mode: ModeContent, Path: file}, want: ptr(helloDigest)},
		{name: "content missing file", config: Config{Mode: ModeContent, Path: filepath.Join(dir, "missing")}, wantErr: true},
		{name: "content without path", config: Config{Mode: ModeContent}, wantErr: true},
		{name: "unknown mode", config: Config{Mode: "moon-phase"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Calculate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Calculate() = %q, want nil", *got)
			case tt.want != nil && got == nil:
				t.Errorf("Calculate() = nil, want %q", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("Calculate() = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestFilepathSeed(t *testing.T) {
	got := FilepathSeed("icons/alice.png")
	if !filepath.IsAbs(got) {
		t.Errorf("FilepathSeed() = %q, want an absolute path", got)
	}
	if !strings.HasSuffix(got, filepath.Join("icons", "alice.png")) {
		t.Errorf("FilepathSeed() = %q, want suffix icons/alice.png", got)
	}

	abs := filepath.Join(t.TempDir(), "alice.png")
	if got := FilepathSeed(abs); got != abs {
		t.Errorf("FilepathSeed(%q) = %q, want it unchanged", abs, got)
	}

	// URLs are plain relative paths here.
	if got := FilepathSeed("https://example.com/alice.png"); !filepath.IsAbs(got) {
		t.Errorf("FilepathSeed() = %q, want an absolute path", got)
	}
}

func TestContentSeed(t *testing.T) {
	got, err := ContentSeed(strings.NewReader("hello\n"))
	if err != nil {
		t.Fatalf("ContentSeed() error = %v", err)
	}
	if got != helloDigest {
		t.Errorf("ContentSeed() = %q, want %q", got, helloDigest)
	}
}

func TestParseMode(t *testing.T) {
	for _, mode := range ValidModes() {
		t.Run(string(mode), func(t *testing.T) {
			got, err := ParseMode(string(mode))
			if err != nil {
				t.Fatalf("ParseMode() error = %v", err)
			}
			if got != mode {
				t.Errorf("ParseMode() = %q, want %q", got, mode)
			}
		})
	}

	if _, err := ParseMode("Manual"); err == nil {
		t.Error("ParseMode() expected error for unknown mode")
	}
}

func ptr(s string) *string {
	return &s
}
