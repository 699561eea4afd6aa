// Package build writes the generated artifacts into the target directory,
// runs the external build command and records the snapshot of every
// successful build.
//
// A build whose command exits non-zero is an outcome, not an error: the
// snapshot is left untouched so the next run retries. Errors are reserved for
// files that cannot be written and commands that cannot be started.
package build
