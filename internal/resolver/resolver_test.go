package resolver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/testutil"
)

func TestResolve_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	a := testutil.HandlerModule(t, root, "a", "example.com/a", "v0.1.0")
	b := testutil.HandlerModule(t, root, "b", "example.com/b/v2", "v2.3.4")
	specs := []config.DependencySpec{
		{Path: a, Handler: "H1", Namespace: "beta"},
		{Path: b, Handler: "H2", Namespace: "alpha"},
	}

	// --- Act ---
	resolved, err := New().Resolve(context.Background(), specs)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []config.ResolvedDependency{
		{Spec: specs[0], Descriptor: config.PackageDescriptor{Name: "example.com/a", Version: "v0.1.0"}},
		{Spec: specs[1], Descriptor: config.PackageDescriptor{Name: "example.com/b/v2", Version: "v2.3.4"}},
	}, resolved)
}

func TestResolve_SameModuleSamePathIsShared(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := testutil.HandlerModule(t, root, "a", "example.com/a", "v1.0.0")

	resolved, err := New().Resolve(context.Background(), []config.DependencySpec{
		{Path: a, Handler: "Reader", Namespace: "read"},
		{Path: a, Handler: "Writer", Namespace: "write"},
	})

	require.NoError(t, err)
	require.Len(t, resolved, 2)
	require.Equal(t, resolved[0].Descriptor, resolved[1].Descriptor)
}

func TestResolve_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		files       map[string]string
		errContains string
	}{
		{
			name:        "missing descriptor",
			files:       map[string]string{"m/go.mod": "module example.com/m\n"},
			errContains: "handler.hcl",
		},
		{
			name: "malformed descriptor",
			files: map[string]string{
				"m/handler.hcl": "package {",
				"m/go.mod":      "module example.com/m\n",
			},
			errContains: "handler.hcl",
		},
		{
			name: "missing version",
			files: map[string]string{
				"m/handler.hcl": "package {\n  name = \"example.com/m\"\n}\n",
				"m/go.mod":      "module example.com/m\n",
			},
			errContains: "version",
		},
		{
			name: "non canonical version",
			files: map[string]string{
				"m/handler.hcl": "package {\n  name    = \"example.com/m\"\n  version = \"1.0\"\n}\n",
				"m/go.mod":      "module example.com/m\n",
			},
			errContains: "1.0",
		},
		{
			name: "major version suffix mismatch",
			files: map[string]string{
				"m/handler.hcl": "package {\n  name    = \"example.com/m\"\n  version = \"v2.0.0\"\n}\n",
				"m/go.mod":      "module example.com/m\n",
			},
			errContains: "v2",
		},
		{
			name: "missing go.mod",
			files: map[string]string{
				"m/handler.hcl": "package {\n  name    = \"example.com/m\"\n  version = \"v1.0.0\"\n}\n",
			},
			errContains: "go.mod",
		},
		{
			name: "go.mod names another module",
			files: map[string]string{
				"m/handler.hcl": "package {\n  name    = \"example.com/m\"\n  version = \"v1.0.0\"\n}\n",
				"m/go.mod":      "module example.com/other\n",
			},
			errContains: "does not match",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			root := t.TempDir()
			testutil.WriteFiles(t, root, tc.files)

			// --- Act ---
			resolved, err := New().Resolve(context.Background(), []config.DependencySpec{
				{Path: filepath.Join(root, "m"), Handler: "H", Namespace: "n"},
			})

			// --- Assert ---
			require.Error(t, err)
			require.Nil(t, resolved)
			require.Equal(t, config.KindResolution, config.KindOf(err), "error: %v", err)
			require.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestResolve_FailFastWithoutPartialResult(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	good := testutil.HandlerModule(t, root, "good", "example.com/good", "v1.0.0")
	missing := filepath.Join(root, "missing")

	// --- Act ---
	resolved, err := New().Resolve(context.Background(), []config.DependencySpec{
		{Path: good, Handler: "G", Namespace: "g"},
		{Path: missing, Handler: "M", Namespace: "m"},
		{Path: good, Handler: "G2", Namespace: "g2"},
	})

	// --- Assert ---
	require.Nil(t, resolved)
	require.True(t, errors.Is(err, fs.ErrNotExist), "cause should survive wrapping: %v", err)
	require.Contains(t, err.Error(), missing)
}

func TestResolve_OneModuleFromTwoDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	first := testutil.HandlerModule(t, root, "first", "example.com/dup", "v1.0.0")
	second := testutil.HandlerModule(t, root, "second", "example.com/dup", "v1.0.0")

	_, err := New().Resolve(context.Background(), []config.DependencySpec{
		{Path: first, Handler: "A", Namespace: "a"},
		{Path: second, Handler: "B", Namespace: "b"},
	})

	require.Equal(t, config.KindResolution, config.KindOf(err))
	require.Contains(t, err.Error(), "also provided by "+first)
}

func TestResolve_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Resolve(ctx, []config.DependencySpec{{Path: t.TempDir(), Handler: "H", Namespace: "n"}})

	require.ErrorIs(t, err, context.Canceled)
}
