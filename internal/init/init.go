// Package init implements the fizzcheck init subcommand.
// It writes a starter config, the suite test data and a project-scoped MCP
// config. Existing files are kept unless force is set.
package init

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeropsio/fizzcheck/internal/content"
)

// renames maps templates whose target path differs from the template name.
var renames = map[string]string{
	"mcp-config.json": ".mcp.json",
}

// TargetPath returns where the template is written, relative to the base directory.
func TargetPath(template string) string {
	if p, ok := renames[template]; ok {
		return p
	}
	return template
}

// Run writes every embedded template into baseDir and reports progress to w.
func Run(baseDir string, force bool, w io.Writer) error {
	for _, name := range content.ListTemplates() {
		rel := TargetPath(name)
		written, err := writeTemplate(name, filepath.Join(baseDir, rel), force)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		if written {
			fmt.Fprintf(w, "  → %s\n", rel)
		} else {
			fmt.Fprintf(w, "  · %s exists, kept (use -force to overwrite)\n", rel)
		}
	}

	fmt.Fprintln(w, "  ✓ Init complete")
	return nil
}

func writeTemplate(name, path string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}

	tmpl, err := content.GetTemplate(name)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	// The config holds API secrets once filled in.
	if err := os.WriteFile(path, []byte(tmpl), 0o600); err != nil {
		return false, err
	}
	return true, nil
}
