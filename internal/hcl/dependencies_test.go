package hcl

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/routergen/internal/config"
)

func TestDecodeDependencies_PreservesSourceOrder(t *testing.T) {
	t.Parallel()

	src := `
dependency "beta" {
  path    = "../a"
  handler = "H1"
}

dependency "alpha" {
  path    = "../b"
  handler = "H2"
}
`
	specs, err := DecodeDependencies("deps.hcl", []byte(src))

	require.NoError(t, err)
	require.Equal(t, []config.DependencySpec{
		{Path: "../a", Handler: "H1", Namespace: "beta"},
		{Path: "../b", Handler: "H2", Namespace: "alpha"},
	}, specs)
}

func TestDecodeDependencies_Rejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
	}{
		{
			name: "syntax error",
			src:  `dependency "a" {`,
		},
		{
			name: "missing handler",
			src:  `dependency "a" { path = "x" }`,
		},
		{
			name: "missing label",
			src:  `dependency { path = "x" handler = "H" }`,
		},
		{
			name: "unknown block",
			src:  `plugin "a" {}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeDependencies("deps.hcl", []byte(tc.src))
			require.Error(t, err)
		})
	}
}

func TestDecodeDependencies_Empty(t *testing.T) {
	t.Parallel()

	specs, err := DecodeDependencies("deps.hcl", []byte("# nothing yet\n"))

	require.NoError(t, err)
	require.Empty(t, specs)
}
