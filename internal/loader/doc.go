// Package loader reads the dependency specification list from a file, a
// directory of HCL files, or an inline blob, and returns it in input order.
//
// Supported syntaxes are JSON (the `[{"path","handler","ns"}]` list), YAML
// (the same records) and HCL (`dependency "<ns>" { path, handler }` blocks).
// Every structural problem is reported as a config.KindFormat error; a
// missing file is a config.KindIO error.
package loader
