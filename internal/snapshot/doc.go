// Package snapshot owns the canonical form of a dependency set and its record
// on disk.
//
// A snapshot is the canonical set of the last successful build, stored as
// `last-deps.json` in the target directory. The Detector compares a fresh set
// against it to decide whether a run can be skipped.
package snapshot
