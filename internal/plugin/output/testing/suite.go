// Package testing provides shared test utilities for output plugins.
package testing

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
	"github.com/jmylchreest/blockies/internal/plugin/output"
)

// KnownSeed is the seed of the icon returned by CreateTestIcon.
const KnownSeed = "0x1234567890abcdef"

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		if p.DefaultOutputDir() == "" {
			t.Error("DefaultOutputDir() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with the known icon, a nil icon
// and a custom base name.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := p.Generate(CreateTestIcon(t))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}

		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
	})

	t.Run("GenerateNilIcon", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil icon should return error")
		}
	})

	t.Run("GenerateWithBaseName", func(t *testing.T) {
		namer, ok := p.(output.BaseNamer)
		if !ok {
			t.Skip("Plugin does not implement SetBaseName")
		}

		namer.SetBaseName("alice")
		defer namer.SetBaseName("")

		files, err := p.Generate(CreateTestIcon(t))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for name := range files {
			if !strings.HasPrefix(name, "alice.") {
				t.Errorf("Generate() file %q does not use base name", name)
			}
		}
	})
}

// TestVerbosePlugin tests verbose functionality if the plugin supports it.
func TestVerbosePlugin(t *testing.T, p any) {
	vp, ok := p.(output.VerbosePlugin)
	if !ok {
		t.Skip("Plugin does not implement SetVerbose")
	}

	t.Run("SetVerbose", func(_ *testing.T) {
		// Just test that it doesn't panic.
		vp.SetVerbose(true)
		vp.SetVerbose(false)
	})
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{
			Use: "test",
		}

		p.RegisterFlags(cmd)

		expectedFlag := expectedFlagPrefix + ".output-dir"
		if cmd.Flags().Lookup(expectedFlag) == nil {
			t.Fatalf("RegisterFlags() did not register %s flag", expectedFlag)
		}

		dir := t.TempDir()
		if err := cmd.Flags().Set(expectedFlag, dir); err != nil {
			t.Fatalf("failed to set %s: %v", expectedFlag, err)
		}
		if got := p.DefaultOutputDir(); got != dir {
			t.Errorf("DefaultOutputDir() = %s, want %s after setting %s", got, dir, expectedFlag)
		}
	})
}

// CreateTestIcon builds the icon for KnownSeed with default dimensions.
func CreateTestIcon(t *testing.T) *icon.Icon {
	t.Helper()

	ic, err := icon.Build(icon.Options{Seed: icon.Seed(KnownSeed)})
	if err != nil {
		t.Fatalf("failed to build test icon: %v", err)
	}
	return ic
}

// RunAllTests runs all standard tests for a plugin.
// TestFlags runs last because it points the plugin at a temporary directory.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config.ExpectedName)
	TestGeneration(t, p, config.ExpectedFiles)
	TestVerbosePlugin(t, p)
	TestFlags(t, p, config.ExpectedName)
}

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name
	ExpectedFiles []string // Files that Generate() should return with no base name set
}
