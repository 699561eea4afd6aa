package loader

import (
	"context"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/fsutil"
	"github.com/vk/routergen/internal/hcl"
)

// InlineName labels inline blobs in error messages.
const InlineName = "<inline>"

// Loader is the config.SpecLoader for JSON, YAML and HCL dependency lists.
type Loader struct {
	converter *hcl.Converter
}

// New creates a new dependency list loader.
func New() *Loader {
	return &Loader{converter: hcl.NewConverter()}
}

var _ config.SpecLoader = (*Loader)(nil)

// Load reads src and returns its records in input order with every path made
// absolute.
func (l *Loader) Load(ctx context.Context, src config.Source) ([]config.DependencySpec, error) {
	logger := ctxlog.FromContext(ctx)

	var (
		specs   []config.DependencySpec
		baseDir string
		name    string
		err     error
	)

	switch {
	case src.Inline != "":
		name = InlineName
		baseDir = src.BaseDir
		logger.Debug("Loading inline dependency list.", "bytes", len(src.Inline), "format", src.Format)
		specs, err = l.decode(name, inlineFormat(src.Format), []byte(src.Inline))
	case src.Path != "":
		name = src.Path
		specs, baseDir, err = l.loadPath(ctx, src.Path, src.Format)
	default:
		return nil, config.FormatErrorf("", "no dependency list given")
	}
	if err != nil {
		return nil, err
	}

	// An empty base resolves against the working directory.
	if baseDir, err = filepath.Abs(baseDir); err != nil {
		return nil, config.IOError("resolve base directory", name, err)
	}

	for i := range specs {
		if err := validate(name, i, specs[i]); err != nil {
			return nil, err
		}
		specs[i].Path = absPath(baseDir, specs[i].Path)
	}
	warnDuplicateNamespaces(ctx, specs)

	logger.Info("Dependency list loaded.", "source", name, "dependencies", len(specs))
	return specs, nil
}

// loadPath reads a list file or a directory of HCL files. It also returns
// the directory relative dependency paths are anchored at: the file's
// directory, or the directory itself.
func (l *Loader) loadPath(ctx context.Context, path string, format config.SourceFormat) ([]config.DependencySpec, string, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", config.IOError("stat", path, err)
	}

	if !info.IsDir() {
		specs, err := l.loadFile(path, format)
		return specs, filepath.Dir(path), err
	}

	if format != config.FormatAuto && format != config.FormatHCL && format != "" {
		return nil, "", config.FormatErrorf(path, "a directory holds HCL files, not %s", format)
	}
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, "", config.IOError("walk", path, err)
	}
	logger.Debug("Discovered HCL dependency files.", "dir", path, "count", len(files))

	specs := []config.DependencySpec{}
	for _, file := range files {
		part, err := l.loadFile(file, config.FormatHCL)
		if err != nil {
			return nil, "", err
		}
		specs = append(specs, part...)
	}
	return specs, path, nil
}

func (l *Loader) loadFile(path string, format config.SourceFormat) ([]config.DependencySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, config.IOError("read", path, err)
	}
	if format == config.FormatAuto || format == "" {
		format = formatFromExt(path)
	}
	return l.decode(path, format, data)
}

func (l *Loader) decode(name string, format config.SourceFormat, data []byte) ([]config.DependencySpec, error) {
	var (
		specs []config.DependencySpec
		err   error
	)
	switch format {
	case config.FormatJSON:
		specs, err = l.decodeJSON(data)
	case config.FormatYAML:
		specs, err = decodeYAML(data)
	case config.FormatHCL:
		specs, err = hcl.DecodeDependencies(name, data)
	default:
		return nil, config.FormatErrorf(name, "unsupported dependency list format %q", format)
	}
	if err != nil {
		return nil, &config.Error{Kind: config.KindFormat, Op: "parse", Path: name, Err: err}
	}
	if specs == nil {
		specs = []config.DependencySpec{}
	}
	return specs, nil
}

func (l *Loader) decodeJSON(data []byte) ([]config.DependencySpec, error) {
	var specs []config.DependencySpec
	if err := l.converter.UnmarshalJSON(data, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// formatFromExt picks a syntax from the file extension. Unknown extensions
// are read as JSON, the format of the historical deps.json.
func formatFromExt(path string) config.SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.FormatYAML
	case ".hcl":
		return config.FormatHCL
	default:
		return config.FormatJSON
	}
}

func inlineFormat(format config.SourceFormat) config.SourceFormat {
	if format == config.FormatAuto || format == "" {
		return config.FormatJSON
	}
	return format
}

// validate checks what the generator needs to emit a record: a path to
// point the manifest at and an exported Go identifier to re-export.
func validate(name string, i int, spec config.DependencySpec) error {
	if strings.TrimSpace(spec.Path) == "" {
		return config.FormatErrorf(name, "dependency %d (namespace %q): path is empty", i, spec.Namespace)
	}
	if !token.IsIdentifier(spec.Handler) || !token.IsExported(spec.Handler) {
		return config.FormatErrorf(name, "dependency %d (namespace %q): handler %q is not an exported Go identifier", i, spec.Namespace, spec.Handler)
	}
	return nil
}

func absPath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}

// warnDuplicateNamespaces logs namespaces claimed by more than one
// dependency. They are kept; the dispatcher receives every route in
// canonical order.
func warnDuplicateNamespaces(ctx context.Context, specs []config.DependencySpec) {
	logger := ctxlog.FromContext(ctx)
	seen := make(map[string]int, len(specs))
	for i, spec := range specs {
		if first, ok := seen[spec.Namespace]; ok {
			logger.Warn("Namespace is claimed by more than one dependency.", "namespace", spec.Namespace, "first", first, "duplicate", i)
			continue
		}
		seen[spec.Namespace] = i
	}
}
