// Package testutil holds fixtures shared by the package tests: on-disk
// handler modules, dependency lists, and a scripted build runner.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes every entry of files below root, creating parent
// directories as needed. Keys are slash-separated relative paths.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// HandlerModule writes a minimal handler module into root/dir: a go.mod
// declaring name and a handler.hcl declaring name and version. It returns the
// module directory.
func HandlerModule(t *testing.T, root, dir, name, version string) string {
	t.Helper()

	WriteFiles(t, root, map[string]string{
		dir + "/go.mod": fmt.Sprintf("module %s\n\ngo 1.24\n", name),
		dir + "/handler.hcl": Unindent(fmt.Sprintf(`
			package {
			  name    = %q
			  version = %q
			}
		`, name, version)),
	})
	return filepath.Join(root, filepath.FromSlash(dir))
}

// Dep is one record of a JSON dependency list.
type Dep struct {
	Path, Handler, Namespace string
}

// DepsJSON renders deps in the deps.json layout.
func DepsJSON(deps ...Dep) string {
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = fmt.Sprintf(`{"path": %q, "handler": %q, "ns": %q}`, d.Path, d.Handler, d.Namespace)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Unindent removes common leading whitespace from a multi-line string,
// allowing for readable, indented HCL snippets in Go tests.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")

	// Remove leading/trailing empty lines that are common with multi-line literals
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	var b strings.Builder
	for _, line := range lines {
		switch {
		case minIndent <= 0:
			b.WriteString(line)
		case len(line) >= minIndent:
			b.WriteString(line[minIndent:])
		default:
			b.WriteString(strings.TrimSpace(line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
