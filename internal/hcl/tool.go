package hcl

import (
	"context"
	"os"

	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/schema"
)

// LoadTool reads the generator's config file and overlays it on
// config.DefaultTool. An empty path returns the defaults.
func LoadTool(ctx context.Context, path string) (config.Tool, error) {
	logger := ctxlog.FromContext(ctx)
	tool := config.DefaultTool()

	if path == "" {
		logger.Debug("No tool config given, using defaults.")
		return tool, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return config.Tool{}, config.IOError("read tool config", path, err)
	}

	var file schema.ToolFile
	if err := decodeSource(path, src, &file); err != nil {
		return config.Tool{}, &config.Error{Kind: config.KindFormat, Op: "parse", Path: path, Err: err}
	}

	tool = mergeTool(tool, &file)
	if err := tool.Validate(); err != nil {
		return config.Tool{}, &config.Error{Kind: config.KindFormat, Op: "validate", Path: path, Err: err}
	}

	logger.Debug("Tool config loaded.", "path", path, "program", tool.Program.Name, "frameworks", len(tool.Frameworks))
	return tool, nil
}

func mergeTool(tool config.Tool, file *schema.ToolFile) config.Tool {
	if p := file.Program; p != nil {
		nameChanged := p.Name != "" && p.Name != tool.Program.Name
		if p.Name != "" {
			tool.Program.Name = p.Name
		}
		if p.Module != "" {
			tool.Program.Module = p.Module
		} else if nameChanged {
			tool.Program.Module = p.Name
		}
		if p.GoVersion != "" {
			tool.Program.GoVersion = p.GoVersion
		}
		if nameChanged {
			tool.BuildCommand = config.DefaultBuildCommand(tool.Program.Name)
		}
	}

	if len(file.Frameworks) > 0 {
		tool.Frameworks = make([]config.Framework, 0, len(file.Frameworks))
		for _, fw := range file.Frameworks {
			tool.Frameworks = append(tool.Frameworks, config.Framework{Module: fw.Module, Version: fw.Version})
		}
	}

	if pk := file.Packages; pk != nil {
		if pk.Host != "" {
			tool.Packages.Host = pk.Host
		}
		if pk.Router != "" {
			tool.Packages.Router = pk.Router
		}
	}

	if b := file.Build; b != nil && len(b.Command) > 0 {
		tool.BuildCommand = append([]string(nil), b.Command...)
	}
	return tool
}
