package hcl

import (
	"errors"
	"strings"

	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/schema"
)

// DescriptorFileName is the build descriptor every handler module carries at
// its root.
const DescriptorFileName = "handler.hcl"

// DecodeDescriptor reads the package block of a handler descriptor. Both
// name and version are required.
func DecodeDescriptor(filename string, src []byte) (config.PackageDescriptor, error) {
	var file schema.DescriptorFile
	if err := decodeSource(filename, src, &file); err != nil {
		return config.PackageDescriptor{}, err
	}
	if file.Package == nil {
		return config.PackageDescriptor{}, errors.New("missing package block")
	}

	desc := config.PackageDescriptor{
		Name:    strings.TrimSpace(file.Package.Name),
		Version: strings.TrimSpace(file.Package.Version),
	}
	if desc.Name == "" {
		return config.PackageDescriptor{}, errors.New("package name is empty")
	}
	if desc.Version == "" {
		return config.PackageDescriptor{}, errors.New("package version is empty")
	}
	return desc, nil
}
