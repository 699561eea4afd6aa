package hcl

import (
	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/schema"
)

// DecodeDependencies reads an HCL dependency list. Blocks are returned in
// source order; the block label becomes the namespace.
func DecodeDependencies(filename string, src []byte) ([]config.DependencySpec, error) {
	var file schema.DependencyFile
	if err := decodeSource(filename, src, &file); err != nil {
		return nil, err
	}

	specs := make([]config.DependencySpec, 0, len(file.Dependencies))
	for _, dep := range file.Dependencies {
		specs = append(specs, config.DependencySpec{
			Path:      dep.Path,
			Handler:   dep.Handler,
			Namespace: dep.Namespace,
		})
	}
	return specs, nil
}
