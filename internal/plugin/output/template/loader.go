// Package template loads plugin templates, preferring user overrides in the
// blockies config directory over the copies embedded in the binary.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blockies/internal/config"
)

// ErrTemplateExists is returned when dumping would overwrite a custom template.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader handles loading templates with support for custom overrides.
// It checks for custom templates in <config dir>/templates/{pluginName}/
// and falls back to the embedded templates if custom ones don't exist.
type Loader struct {
	pluginName string
	files      fs.FS
	customBase string
	logger     hclog.Logger
}

// New creates a template loader for the named plugin. files holds the
// plugin's default templates, usually an embed.FS.
func New(pluginName string, files fs.FS) *Loader {
	customBase := filepath.Join(".config", "blockies", "templates")
	if dir, err := config.Dir(); err == nil {
		customBase = filepath.Join(dir, "templates")
	}

	return &Loader{
		pluginName: pluginName,
		files:      files,
		customBase: customBase,
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the directory holding per-plugin template overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger that reports which template source was used.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	l.logger = logger
	return l
}

// Load reads a template file, checking for custom overrides first.
// Returns the template content and whether it was loaded from a custom override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)

	if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 -- path under the user's config directory
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	l.logger.Debug("using embedded template", "name", filename)

	content, err = fs.ReadFile(l.files, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}

	return content, false, nil
}

// CustomPath returns the path where a custom template would be located.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.CustomDir(), filepath.FromSlash(filename))
}

// CustomDir returns the directory where custom templates for this plugin would be located.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.pluginName)
}

// HasCustomTemplate checks if a custom template exists for the given filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// List returns the embedded template files.
func (l *Loader) List() ([]string, error) {
	var templates []string

	err := fs.WalkDir(l.files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".tmpl" {
			templates = append(templates, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}

	return templates, nil
}

// Dump copies an embedded template into the custom templates directory so
// it can be edited. Without force an existing custom copy is left alone and
// ErrTemplateExists is returned.
func (l *Loader) Dump(filename string, force bool) error {
	content, err := fs.ReadFile(l.files, filename)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, outputPath)
		}
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", outputDir, err)
	}

	if err := os.WriteFile(outputPath, content, 0o644); err != nil { // #nosec G306 -- templates are not secret
		return fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	return nil
}

// DumpAll dumps every embedded template and returns the paths written.
// Templates that already exist are skipped when force is false; their
// ErrTemplateExists errors are joined into the returned error after the
// remaining templates have been written. Other failures stop immediately.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	templates, err := l.List()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error

	for _, tmpl := range templates {
		if err := l.Dump(tmpl, force); err != nil {
			if errors.Is(err, ErrTemplateExists) {
				skipped = append(skipped, err)
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, l.CustomPath(tmpl))
	}

	return dumped, errors.Join(skipped...)
}

// TemplateInfo describes where a template would be loaded from.
type TemplateInfo struct {
	Filename       string
	EmbeddedExists bool
	CustomExists   bool
	CustomPath     string
}

// UsingCustom reports whether Load would return the custom copy.
func (i TemplateInfo) UsingCustom() bool {
	return i.CustomExists
}

// Info returns information about a specific template.
func (l *Loader) Info(filename string) TemplateInfo {
	_, embeddedErr := fs.Stat(l.files, filename)

	return TemplateInfo{
		Filename:       filename,
		EmbeddedExists: embeddedErr == nil,
		CustomExists:   l.HasCustomTemplate(filename),
		CustomPath:     l.CustomPath(filename),
	}
}
