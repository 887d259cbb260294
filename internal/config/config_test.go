package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

		dir, err := Dir()
		if err != nil {
			t.Fatalf("Dir() error = %v", err)
		}
		if want := filepath.Join("/tmp/xdg", "blockies"); dir != want {
			t.Errorf("Dir() = %q, want %q", dir, want)
		}

		path, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error = %v", err)
		}
		if want := filepath.Join("/tmp/xdg", "blockies", FileName); path != want {
			t.Errorf("DefaultPath() = %q, want %q", path, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)

		dir, err := Dir()
		if err != nil {
			t.Fatalf("Dir() error = %v", err)
		}
		if want := filepath.Join(home, ".config", "blockies"); dir != want {
			t.Errorf("Dir() = %q, want %q", dir, want)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := New()
	cfg.Defaults = Defaults{
		Size:     12,
		Scale:    6,
		BgColor:  "white",
		SeedMode: "content",
		Outputs:  []string{"png", "svg"},
	}
	cfg.Disable("json")
	cfg.AddExternal(&ExternalPlugin{
		Name:     "ascii",
		Path:     "/usr/local/bin/blockies-ascii",
		Protocol: "json-stdio",
		Version:  "0.2.0",
		Args:     map[string]any{"charset": "#*"},
	})

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Version != CurrentVersion {
		t.Errorf("Version = %q, want %q", loaded.Version, CurrentVersion)
	}
	if loaded.Defaults.Size != 12 || loaded.Defaults.Scale != 6 || loaded.Defaults.BgColor != "white" {
		t.Errorf("Defaults = %+v", loaded.Defaults)
	}
	if !slices.Equal(loaded.Defaults.Outputs, []string{"png", "svg"}) {
		t.Errorf("Defaults.Outputs = %v", loaded.Defaults.Outputs)
	}
	if !slices.Equal(loaded.DisabledPlugins, []string{"json"}) {
		t.Errorf("DisabledPlugins = %v", loaded.DisabledPlugins)
	}

	ascii, ok := loaded.ExternalPlugins["ascii"]
	if !ok {
		t.Fatal("external plugin ascii not loaded")
	}
	if ascii.Path != "/usr/local/bin/blockies-ascii" || ascii.Protocol != "json-stdio" {
		t.Errorf("ExternalPlugins[ascii] = %+v", ascii)
	}
	if ascii.Args["charset"] != "#*" {
		t.Errorf("Args = %v", ascii.Args)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
		}
	})

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed", content: "defaults: [", wantErr: "failed to parse"},
		{name: "negative size", content: "defaults:\n  size: -1\n", wantErr: "defaults.size"},
		{name: "negative scale", content: "defaults:\n  scale: -3\n", wantErr: "defaults.scale"},
		{name: "relative plugin path", content: "external_plugins:\n  ascii:\n    name: ascii\n    path: bin/ascii\n", wantErr: "must be absolute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOrNew(t *testing.T) {
	cfg, err := LoadOrNew(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("LoadOrNew() error = %v", err)
	}
	if cfg.ExternalPlugins == nil || cfg.Version != CurrentVersion {
		t.Errorf("LoadOrNew() = %+v, want empty config", cfg)
	}
}

func TestEnableDisable(t *testing.T) {
	cfg := New()

	cfg.Enable("png")
	cfg.Enable("png")
	if !slices.Equal(cfg.EnabledPlugins, []string{"png"}) {
		t.Errorf("EnabledPlugins = %v, want [png]", cfg.EnabledPlugins)
	}

	cfg.Disable("png")
	if len(cfg.EnabledPlugins) != 0 || !slices.Equal(cfg.DisabledPlugins, []string{"png"}) {
		t.Errorf("after Disable: enabled %v disabled %v", cfg.EnabledPlugins, cfg.DisabledPlugins)
	}

	cfg.Enable(All)
	if !slices.Equal(cfg.EnabledPlugins, []string{All}) || len(cfg.DisabledPlugins) != 0 {
		t.Errorf("after Enable(all): enabled %v disabled %v", cfg.EnabledPlugins, cfg.DisabledPlugins)
	}

	cfg.Disable(All)
	if len(cfg.EnabledPlugins) != 0 || !slices.Equal(cfg.DisabledPlugins, []string{All}) {
		t.Errorf("after Disable(all): enabled %v disabled %v", cfg.EnabledPlugins, cfg.DisabledPlugins)
	}

	cfg.Clear(All)
	if len(cfg.EnabledPlugins) != 0 || len(cfg.DisabledPlugins) != 0 {
		t.Errorf("after Clear(all): enabled %v disabled %v", cfg.EnabledPlugins, cfg.DisabledPlugins)
	}
}

func TestExternalPlugins(t *testing.T) {
	cfg := New()
	cfg.AddExternal(&ExternalPlugin{Name: "zeta", Path: "/opt/zeta"})
	cfg.AddExternal(&ExternalPlugin{Name: "alpha", Path: "/opt/alpha"})
	cfg.Enable("alpha")

	if got := cfg.ExternalNames(); !slices.Equal(got, []string{"alpha", "zeta"}) {
		t.Errorf("ExternalNames() = %v", got)
	}

	if !cfg.RemoveExternal("alpha") {
		t.Error("RemoveExternal(alpha) = false, want true")
	}
	if cfg.RemoveExternal("alpha") {
		t.Error("second RemoveExternal(alpha) = true, want false")
	}
	if slices.Contains(cfg.EnabledPlugins, "alpha") {
		t.Error("RemoveExternal() left alpha enabled")
	}
}
