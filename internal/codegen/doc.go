// Package codegen renders the generated dispatcher program from a canonical
// dependency set: a `go.mod` manifest and a `main.go` entry point.
//
// Generation is pure. Equal canonical sets produce byte-identical artifacts,
// and every dependency is named by its position: the i-th item of the set is
// `dep<i>` in both files.
package codegen
