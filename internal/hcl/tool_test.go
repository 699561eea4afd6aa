package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/routergen/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadTool_DefaultsWithoutPath(t *testing.T) {
	t.Parallel()

	tool, err := LoadTool(context.Background(), "")

	require.NoError(t, err)
	require.Equal(t, config.DefaultTool(), tool)
}

func TestLoadTool_OverlaysFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, t.TempDir(), "routergen.hcl", `
program {
  name = "my-router"
}

framework "example.com/rpc" {
  version = "v1.0.0"
}

packages {
  router = "example.com/rpc/dispatch"
}
`)

	// --- Act ---
	tool, err := LoadTool(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "my-router", tool.Program.Name)
	require.Equal(t, "my-router", tool.Program.Module, "module follows a renamed program")
	require.Equal(t, config.DefaultGoVersion, tool.Program.GoVersion)
	require.Equal(t, []config.Framework{{Module: "example.com/rpc", Version: "v1.0.0"}}, tool.Frameworks)
	require.Equal(t, "example.com/rpc/dispatch", tool.Packages.Router)
	require.Equal(t, config.DefaultTool().Packages.Host, tool.Packages.Host)
	require.Equal(t, config.DefaultBuildCommand("my-router"), tool.BuildCommand)
}

func TestLoadTool_ExplicitBuildCommandWins(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "routergen.hcl", `
program {
  name = "my-router"
}

build {
  command = ["make", "release"]
}
`)

	tool, err := LoadTool(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, []string{"make", "release"}, tool.BuildCommand)
}

func TestLoadTool_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadTool(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
	require.Equal(t, config.KindIO, config.KindOf(err))

	bad := writeFile(t, dir, "bad.hcl", `program {`)
	_, err = LoadTool(context.Background(), bad)
	require.Error(t, err)
	require.Equal(t, config.KindFormat, config.KindOf(err))

	invalid := writeFile(t, dir, "invalid.hcl", `
build {
  command = []
}
program {
  name = "a/b"
}
`)
	_, err = LoadTool(context.Background(), invalid)
	require.Error(t, err)
	require.Equal(t, config.KindFormat, config.KindOf(err))
	require.Contains(t, err.Error(), "single path element")
}
