package output

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/blockies/internal/icon"
)

type stubPlugin struct {
	name string
}

func (s *stubPlugin) Name() string { return s.name }
func (s *stubPlugin) Description() string { return "stub " + s.name }
func (s *stubPlugin) Generate(*icon.Icon) (map[string][]byte, error) { return nil, nil }
func (s *stubPlugin) RegisterFlags(*cobra.Command) {}
func (s *stubPlugin) Validate() error { return nil }
func (s *stubPlugin) DefaultOutputDir() string { return "." }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{name: "svg"})
	r.Register(&stubPlugin{name: "png"})
	r.Register(&stubPlugin{name: "json"})

	t.Run("List is sorted", func(t *testing.T) {
		want := []string{"json", "png", "svg"}
		if got := r.List(); !slices.Equal(got, want) {
			t.Errorf("List() = %v, want %v", got, want)
		}
	})

	t.Run("Get", func(t *testing.T) {
		p, ok := r.Get("png")
		if !ok || p.Name() != "png" {
			t.Errorf("Get(png) = %v, %v", p, ok)
		}
		if _, ok := r.Get("gif"); ok {
			t.Error("Get(gif) should not find a plugin")
		}
	})

	t.Run("Register replaces", func(t *testing.T) {
		replacement := &stubPlugin{name: "png"}
		r.Register(replacement)
		if p, _ := r.Get("png"); p != replacement {
			t.Error("Register() did not replace existing plugin")
		}
		if got := len(r.List()); got != 3 {
			t.Errorf("List() has %d plugins, want 3", got)
		}
	})

	t.Run("All returns a copy", func(t *testing.T) {
		all := r.All()
		delete(all, "svg")
		if _, ok := r.Get("svg"); !ok {
			t.Error("deleting from All() modified the registry")
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if !r.Remove("json") {
			t.Error("Remove(json) = false, want true")
		}
		if r.Remove("json") {
			t.Error("second Remove(json) = true, want false")
		}
	})
}
