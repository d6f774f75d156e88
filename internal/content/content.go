// Package content holds the files written by `fizzcheck init`.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed templates/*
var templateFS embed.FS

// GetTemplate returns the content of a named template file.
// The name should include the file extension (e.g., "fizzcheck.yaml", "mcp-config.json").
func GetTemplate(name string) (string, error) {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	return string(data), nil
}

// ListTemplates returns sorted names of all embedded templates.
func ListTemplates() []string {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
