package main

import (
	"context"
	"testing"

	"github.com/jmylchreest/blockies/pkg/plugin"
)

func testIcon(args map[string]any) plugin.IconData {
	return plugin.IconData{
		Seed:       "alice",
		Size:       2,
		Scale:      1,
		Grid:       [][]int{{1, 0}, {2, 1}},
		PluginArgs: args,
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{name: "defaults", want: "##..\n**##\n"},
		{name: "charset", args: map[string]any{"charset": " @+"}, want: "@@  \n++@@\n"},
		{name: "repeat", args: map[string]any{"repeat": float64(1)}, want: "#.\n*#\n"},
		{name: "short charset", args: map[string]any{"charset": "ab"}, wantErr: true},
		{name: "zero repeat", args: map[string]any{"repeat": float64(0)}, wantErr: true},
		{name: "fractional repeat", args: map[string]any{"repeat": 1.5}, wantErr: true},
	}

	p := &ASCIIPlugin{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := p.Render(context.Background(), testIcon(tt.args))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := string(files["icon.txt"]); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDryRun(t *testing.T) {
	icon := testIcon(nil)
	icon.DryRun = true

	files, err := (&ASCIIPlugin{}).Render(context.Background(), icon)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Render() in dry-run returned %d files", len(files))
	}
}

func TestRenderLargeValuesAreSpot(t *testing.T) {
	icon := testIcon(nil)
	icon.Grid = [][]int{{3, 0}, {4, 1}}

	files, err := (&ASCIIPlugin{}).Render(context.Background(), icon)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := string(files["icon.txt"]), "**..\n**##\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestMetadata(t *testing.T) {
	p := &ASCIIPlugin{}
	if info := p.GetMetadata(); info.Name != "ascii" || info.Type != "renderer" {
		t.Errorf("GetMetadata() = %+v", info)
	}
	if help := p.GetFlagHelp(); len(help) != 2 {
		t.Errorf("GetFlagHelp() returned %d flags, want 2", len(help))
	}
}
