package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/routergen/internal/config"
)

func dep(ns, path, handler, name, version string) config.ResolvedDependency {
	return config.ResolvedDependency{
		Spec:       config.DependencySpec{Path: path, Handler: handler, Namespace: ns},
		Descriptor: config.PackageDescriptor{Name: name, Version: version},
	}
}

func TestCanonicalize_SortsByNamespace(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := []config.ResolvedDependency{
		dep("beta", "/a", "H1", "example.com/a", "v0.1.0"),
		dep("alpha", "/b", "H2", "example.com/b", "v0.2.0"),
	}
	original := append([]config.ResolvedDependency(nil), input...)

	// --- Act ---
	set := Canonicalize(input)

	// --- Assert ---
	assert.Equal(t, []string{"alpha", "beta"}, set.Namespaces())
	assert.Equal(t, original, input, "input must not be reordered")
}

func TestCanonicalize_StableForEqualNamespaces(t *testing.T) {
	t.Parallel()

	input := []config.ResolvedDependency{
		dep("z", "/z", "Z", "example.com/z", "v1.0.0"),
		dep("same", "/first", "First", "example.com/first", "v1.0.0"),
		dep("same", "/second", "Second", "example.com/second", "v1.0.0"),
	}

	set := Canonicalize(input)

	require.Len(t, set, 3)
	assert.Equal(t, "First", set[0].Spec.Handler)
	assert.Equal(t, "Second", set[1].Spec.Handler)
	assert.Equal(t, "Z", set[2].Spec.Handler)
}

func TestCanonicalize_PermutationInvariant(t *testing.T) {
	t.Parallel()

	a := dep("a", "/a", "A", "example.com/a", "v1.0.0")
	b := dep("b", "/b", "B", "example.com/b", "v1.0.0")
	c := dep("c", "/c", "C", "example.com/c", "v1.0.0")

	want := Canonicalize([]config.ResolvedDependency{a, b, c})
	for _, perm := range [][]config.ResolvedDependency{
		{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	} {
		got := Canonicalize(perm)
		assert.True(t, want.Equal(got), "permutation %v canonicalized to %v", perm, got.Namespaces())
	}
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		set  config.DependencySet
	}{
		{
			name: "two dependencies",
			set: config.DependencySet{
				dep("alpha", "/mods/b", "H2", "example.com/b", "v0.2.0"),
				dep("beta", "/mods/a", "H1", "example.com/a/v3", "v3.0.0-rc.1"),
			},
		},
		{
			name: "quotes and unicode survive",
			set: config.DependencySet{
				dep("ns \"q\" ünï", "/mods/with space", "H", "example.com/q", "v1.0.0+meta"),
			},
		},
		{
			name: "decomposed unicode keeps its bytes",
			set: config.DependencySet{
				dep("e\u0301", "/mods/cafe\u0301", "H", "example.com/e", "v1.0.0"),
				dep("\u00e9", "/mods/caf\u00e9", "H", "example.com/f", "v1.0.0"),
			},
		},
		{
			name: "empty set",
			set:  config.DependencySet{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			store := NewStore(t.TempDir())

			// --- Act ---
			require.NoError(t, store.Save(context.Background(), tc.set))
			got, ok := store.Load(context.Background())

			// --- Assert ---
			require.True(t, ok)
			if diff := cmp.Diff(tc.set, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_NilSetIsSavedAsEmptyList(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(context.Background(), nil))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestStore_LoadTreatsProblemsAsNoSnapshot(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "not json", content: ptr("{{{")},
		{name: "wrong shape", content: ptr(`[{"ns": "a"}]`)},
		{name: "null", content: ptr("null")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := NewStore(t.TempDir())
			if tc.content != nil {
				require.NoError(t, os.WriteFile(store.Path(), []byte(*tc.content), 0o644))
			}

			set, ok := store.Load(context.Background())

			assert.False(t, ok)
			assert.Nil(t, set)
		})
	}
}

func TestStore_SaveFailsOnMissingDirectory(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "absent"))

	err := store.Save(context.Background(), config.DependencySet{})

	require.Error(t, err)
	assert.Equal(t, config.KindIO, config.KindOf(err))
}

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	a := dep("alpha", "/b", "H2", "example.com/b", "v0.2.0")
	b := dep("beta", "/a", "H1", "example.com/a", "v0.1.0")
	bumped := dep("beta", "/a", "H1", "example.com/a", "v0.1.1")

	testCases := []struct {
		name          string
		checkChanges  bool
		snapshot      config.DependencySet
		resolved      []config.ResolvedDependency
		wantUnchanged bool
	}{
		{
			name:          "unchanged set in different input order",
			checkChanges:  true,
			snapshot:      config.DependencySet{a, b},
			resolved:      []config.ResolvedDependency{b, a},
			wantUnchanged: true,
		},
		{
			name:         "checking disabled",
			checkChanges: false,
			snapshot:     config.DependencySet{a, b},
			resolved:     []config.ResolvedDependency{a, b},
		},
		{
			name:         "no snapshot",
			checkChanges: true,
			resolved:     []config.ResolvedDependency{a, b},
		},
		{
			name:         "version changed",
			checkChanges: true,
			snapshot:     config.DependencySet{a, b},
			resolved:     []config.ResolvedDependency{a, bumped},
		},
		{
			name:         "dependency removed",
			checkChanges: true,
			snapshot:     config.DependencySet{a, b},
			resolved:     []config.ResolvedDependency{a},
		},
		{
			name:          "decomposed namespace is unchanged",
			checkChanges:  true,
			snapshot:      config.DependencySet{dep("e\u0301", "/e\u0301", "H", "example.com/e", "v1.0.0")},
			resolved:      []config.ResolvedDependency{dep("e\u0301", "/e\u0301", "H", "example.com/e", "v1.0.0")},
			wantUnchanged: true,
		},
		{
			name:         "composed and decomposed namespaces differ",
			checkChanges: true,
			snapshot:     config.DependencySet{dep("\u00e9", "/e", "H", "example.com/e", "v1.0.0")},
			resolved:     []config.ResolvedDependency{dep("e\u0301", "/e", "H", "example.com/e", "v1.0.0")},
		},
		{
			name:          "both empty",
			checkChanges:  true,
			snapshot:      config.DependencySet{},
			resolved:      nil,
			wantUnchanged: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			store := NewStore(t.TempDir())
			if tc.snapshot != nil {
				require.NoError(t, store.Save(context.Background(), tc.snapshot))
			}
			detector := &Detector{Store: store, CheckChanges: tc.checkChanges}

			// --- Act ---
			set, unchanged := detector.Detect(context.Background(), tc.resolved)

			// --- Assert ---
			assert.Equal(t, tc.wantUnchanged, unchanged)
			assert.True(t, set.Equal(Canonicalize(tc.resolved)))
		})
	}
}

func ptr(s string) *string { return &s }
