package codegen

import (
	"bytes"

	"github.com/dave/jennifer/jen"
	"github.com/vk/routergen/internal/config"
)

// Suffixes of the identifiers emitted for each dependency alias.
const (
	handlerSuffix   = "H"  // re-exported handler type
	tagSuffix       = "N"  // zero-sized namespace tag
	namespaceSuffix = "NS" // namespace string constant
)

// entryPoint renders cmd/<program>/main.go. For every item it emits a binding
// unit (handler alias, namespace tag, namespace constant and the tag's
// Namespace method), then a main that registers one route per item with the
// dispatcher and serves the host channel on stdio.
func (g *Generator) entryPoint(set config.DependencySet, mods []*handlerModule) ([]byte, error) {
	hostPkg := g.tool.Packages.Host
	routerPkg := g.tool.Packages.Router

	f := jen.NewFile("main")
	f.HeaderComment(GeneratedHeader)
	f.ImportName(hostPkg, "nvim")
	f.ImportName(routerPkg, "router")

	for _, m := range mods {
		f.ImportAlias(m.Name, m.alias())
	}

	routes := make([]jen.Code, 0, len(set))
	for i, dep := range set {
		alias := Alias(i)
		g.bindingUnit(f, alias, dep)
		routes = append(routes, jen.Qual(routerPkg, "Route").Call(
			jen.Id(alias+tagSuffix).Values(),
			jen.New(jen.Id(alias+handlerSuffix)),
		))
	}

	newDispatcher := jen.Qual(routerPkg, "New")
	if len(routes) == 0 {
		newDispatcher = newDispatcher.Call()
	} else {
		newDispatcher = newDispatcher.Custom(jen.Options{
			Open:      "(",
			Close:     ")",
			Separator: ",",
			Multi:     true,
		}, routes...)
	}

	f.Func().Id("main").Params().Block(
		jen.Id("dispatcher").Op(":=").Add(newDispatcher),
		jen.Line(),
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual(hostPkg, "New").Call(
			jen.Qual("os", "Stdin"),
			jen.Qual("os", "Stdout"),
			jen.Qual("os", "Stdout"),
			jen.Qual("log", "Printf"),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Qual("fmt", "Fprintf").Call(jen.Qual("os", "Stderr"), jen.Lit("Error: '%v'\n"), jen.Err()),
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		),
		jen.If(
			jen.Err().Op(":=").Id("dispatcher").Dot("Register").Call(jen.Id("v")),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Id("report").Call(jen.Id("v"), jen.Err()),
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		),
		jen.If(jen.Id("report").Call(jen.Id("v"), jen.Id("v").Dot("Serve").Call())).Block(
			jen.Qual("os", "Exit").Call(jen.Lit(1)),
		),
	)

	g.reportFunc(f)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bindingUnit emits the declarations that tie one dependency to its
// namespace.
func (g *Generator) bindingUnit(f *jen.File, alias string, dep config.ResolvedDependency) {
	handler := alias + handlerSuffix
	tag := alias + tagSuffix
	ns := alias + namespaceSuffix

	f.Commentf("%s routes namespace %s to %s.%s.", alias, ns, dep.Descriptor.Name, dep.Spec.Handler)
	f.Type().Id(handler).Op("=").Qual(dep.Descriptor.Name, dep.Spec.Handler)
	f.Type().Id(tag).Struct()
	f.Const().Id(ns).Op("=").Lit(dep.Spec.Namespace)
	f.Func().Params(jen.Id(tag)).Id("Namespace").Params().String().Block(
		jen.Return(jen.Id(ns)),
	)
}

// reportFunc emits the termination handler of the generated program. It
// returns true when the program should exit with a failure status.
//
// A nil error is a graceful shutdown. A closed channel means the host already
// went away, so there is no one to notify and nothing worth printing. Any
// other error is sent to the host and printed to stderr with its cause
// chain.
func (g *Generator) reportFunc(f *jen.File) {
	hostPkg := g.tool.Packages.Host
	stderr := jen.Qual("os", "Stderr")

	f.Comment("report classifies how the host channel terminated.")
	f.Func().Id("report").Params(
		jen.Id("v").Op("*").Qual(hostPkg, "Nvim"),
		jen.Err().Error(),
	).Bool().Block(
		jen.If(jen.Err().Op("==").Nil()).Block(jen.Return(jen.False())),
		jen.If(
			jen.Qual("errors", "Is").Call(jen.Err(), jen.Qual("io", "EOF")).Op("||").
				Qual("errors", "Is").Call(jen.Err(), jen.Qual("io", "ErrClosedPipe")).Op("||").
				Qual("errors", "Is").Call(jen.Err(), jen.Qual("os", "ErrClosed")),
		).Block(jen.Return(jen.False())),
		jen.Line(),
		jen.If(
			jen.Id("werr").Op(":=").Id("v").Dot("WriteErr").Call(jen.Err().Dot("Error").Call().Op("+").Lit("\n")),
			jen.Id("werr").Op("!=").Nil(),
		).Block(
			jen.Qual("fmt", "Fprintf").Call(stderr, jen.Lit("Well, dang... %v\n"), jen.Id("werr")),
		),
		jen.Qual("fmt", "Fprintf").Call(stderr, jen.Lit("Error: '%v'\n"), jen.Err()),
		jen.For(
			jen.Id("cause").Op(":=").Qual("errors", "Unwrap").Call(jen.Err()),
			jen.Id("cause").Op("!=").Nil(),
			jen.Id("cause").Op("=").Qual("errors", "Unwrap").Call(jen.Id("cause")),
		).Block(
			jen.Qual("fmt", "Fprintf").Call(stderr, jen.Lit("Caused by: '%v'\n"), jen.Id("cause")),
		),
		jen.Return(jen.True()),
	)
}
