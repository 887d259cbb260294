package html

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	plugintesting "github.com/jmylchreest/blockies/internal/plugin/output/testing"
)

func newTestPlugin(t *testing.T) *Plugin {
	t.Helper()
	p := New()
	p.customBase = t.TempDir()
	return p
}

func TestPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, newTestPlugin(t), plugintesting.TestConfig{
		ExpectedName:  "html",
		ExpectedFiles: []string{"identicon.html"},
	})
}

func TestEmbeddedTemplates(t *testing.T) {
	names, err := New().Loader().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != templateName {
		t.Errorf("embedded templates = %v, want [%s]", names, templateName)
	}
}

func TestGeneratePage(t *testing.T) {
	ic := plugintesting.CreateTestIcon(t)

	files, err := newTestPlugin(t).Generate(ic)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	page := string(files["identicon.html"])
	for _, want := range []string{
		"<title>" + plugintesting.KnownSeed + "</title>",
		"<svg",
		`shape-rendering="crispEdges"`,
		ic.Color,
		ic.SpotColor,
		"width: 256px",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "<?xml") {
		t.Error("page contains an XML prolog")
	}
	if strings.Contains(page, "ZgotmplZ") {
		t.Error("page contains values rejected by the template escaper")
	}
}

func TestGenerateCustomTemplate(t *testing.T) {
	p := newTestPlugin(t)

	custom := p.Loader().CustomPath(templateName)
	if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
		t.Fatalf("failed to create template dir: %v", err)
	}
	content := `<p style="color: {{ textColour .Icon.BgColor }}">{{ .Icon.Seed }} {{ len .Swatches }}</p>`
	if err := os.WriteFile(custom, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write custom template: %v", err)
	}

	files, err := p.Generate(plugintesting.CreateTestIcon(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// The known icon's background is a light pink.
	want := `<p style="color: #000000">` + plugintesting.KnownSeed + ` 3</p>`
	if got := string(files["identicon.html"]); got != want {
		t.Errorf("page = %q, want %q", got, want)
	}
}

func TestGenerateBrokenTemplate(t *testing.T) {
	p := newTestPlugin(t)

	custom := p.Loader().CustomPath(templateName)
	if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
		t.Fatalf("failed to create template dir: %v", err)
	}
	if err := os.WriteFile(custom, []byte("{{ .Icon.Seed "), 0o644); err != nil {
		t.Fatalf("failed to write custom template: %v", err)
	}

	if _, err := p.Generate(plugintesting.CreateTestIcon(t)); err == nil {
		t.Error("Generate() expected error for a broken template")
	}
}

func TestValidate(t *testing.T) {
	p := New()
	p.displaySize = 0
	if err := p.Validate(); err == nil {
		t.Error("Validate() expected error for zero display size")
	}
}
