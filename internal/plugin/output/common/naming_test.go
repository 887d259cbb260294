package common

import (
	"bytes"
	"strings"
	"testing"
)

func TestSanitiseBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "alice", want: "alice"},
		{in: "alice@example.com", want: "alice-example.com"},
		{in: "0x1234567890abcdef", want: "0x1234567890abcdef"},
		{in: "  spaced   out  ", want: "spaced-out"},
		{in: "../../etc/passwd", want: "etc-passwd"},
		{in: "snake_case-and-dash", want: "snake_case-and-dash"},
		{in: "héllo wörld", want: "h-llo-w-rld"},
		{in: "", want: "identicon"},
		{in: "@@@", want: "identicon"},
		{in: "...", want: "identicon"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitiseBaseName(tt.in, "identicon"); got != tt.want {
				t.Errorf("SanitiseBaseName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := SanitiseBaseName(strings.Repeat("a", 200), "identicon")
	if len(long) != maxBaseNameLen {
		t.Errorf("long name has length %d, want %d", len(long), maxBaseNameLen)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "alice", want: "alice.png"},
		{base: "", want: "identicon.png"},
		{base: "nested/dir/bob", want: "bob.png"},
	}

	for _, tt := range tests {
		if got := FileName(tt.base, "identicon", ".png"); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger("png", false, &buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}

	newLogger("png", true, &buf).Debug("upscaled", "pixels", 256)
	out := buf.String()
	if !strings.Contains(out, "blockies.png") || !strings.Contains(out, "pixels=256") {
		t.Errorf("verbose logger output = %q", out)
	}
}
