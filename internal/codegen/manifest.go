package codegen

import (
	"strings"

	"golang.org/x/mod/modfile"
)

// BuildProfile documents the release settings of the default build command.
const BuildProfile = "Build profile: release (-trimpath -ldflags=-s -w)."

// manifest renders go.mod: the fixed framework requirements in configuration
// order, then one requirement and one local replacement per handler module
// in canonical order. Blocks are not re-sorted.
func (g *Generator) manifest(mods []*handlerModule) ([]byte, error) {
	f := &modfile.File{Syntax: &modfile.FileSyntax{}}
	f.Syntax.Stmt = append(f.Syntax.Stmt, &modfile.CommentBlock{
		Comments: modfile.Comments{Before: []modfile.Comment{
			{Token: "// " + GeneratedHeader},
			{Token: "// " + BuildProfile},
		}},
	})

	if err := f.AddModuleStmt(g.tool.Program.Module); err != nil {
		return nil, err
	}
	if err := f.AddGoStmt(g.tool.Program.GoVersion); err != nil {
		return nil, err
	}

	for _, fw := range g.tool.Frameworks {
		f.AddNewRequire(fw.Module, fw.Version, false)
	}

	for _, m := range mods {
		f.AddNewRequire(m.Name, m.Version, false)
		req := f.Require[len(f.Require)-1]
		req.Syntax.Comments.Suffix = []modfile.Comment{{Token: "// " + aliasList(m.Indices), Suffix: true}}
	}

	for _, m := range mods {
		if err := f.AddReplace(m.Name, "", m.Dir, ""); err != nil {
			return nil, err
		}
	}

	return modfile.Format(f.Syntax), nil
}

func aliasList(indices []int) string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = Alias(idx)
	}
	return strings.Join(names, " ")
}
