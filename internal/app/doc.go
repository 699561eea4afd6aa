// Package app contains the core application logic. It wires the pipeline
// stages together (load, resolve, detect, generate, build) and owns the
// diagnostic logger, decoupled from any specific entrypoint like a CLI.
package app
