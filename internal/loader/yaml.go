package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vk/routergen/internal/config"
	"gopkg.in/yaml.v3"
)

// decodeYAML reads a YAML sequence of {path, handler, ns} mappings. Unknown
// keys and trailing documents are rejected.
func decodeYAML(data []byte) ([]config.DependencySpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var specs []config.DependencySpec
	if err := dec.Decode(&specs); err != nil {
		if errors.Is(err, io.EOF) {
			return []config.DependencySpec{}, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("parse yaml: trailing document")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	for i, spec := range specs {
		if spec.Path == "" || spec.Handler == "" {
			return nil, fmt.Errorf("parse yaml: entry %d: path and handler are required", i)
		}
	}
	return specs, nil
}
