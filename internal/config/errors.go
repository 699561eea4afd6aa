package config

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures.
type Kind int

const (
	KindUnknown Kind = iota
	// KindFormat: malformed specification, descriptor syntax or tool config.
	KindFormat
	// KindIO: missing files or directories, write failures.
	KindIO
	// KindResolution: a dependency's own descriptor is unreadable, missing
	// required fields or inconsistent with its module.
	KindResolution
	// KindBuild: the external build command could not be launched.
	KindBuild
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format error"
	case KindIO:
		return "io error"
	case KindResolution:
		return "resolution error"
	case KindBuild:
		return "build error"
	default:
		return "error"
	}
}

// Error is the error type returned by every pipeline stage.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FormatErrorf reports input that could not be structurally parsed.
func FormatErrorf(path, format string, args ...any) error {
	return &Error{Kind: KindFormat, Op: "parse", Path: path, Err: fmt.Errorf(format, args...)}
}

// IOError wraps a filesystem failure on path.
func IOError(op, path string, err error) error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// ResolutionErrorf reports a dependency whose descriptor cannot be used.
func ResolutionErrorf(path, format string, args ...any) error {
	return &Error{Kind: KindResolution, Op: "resolve", Path: path, Err: fmt.Errorf(format, args...)}
}

// BuildError reports a build command that could not be started.
func BuildError(cmd string, err error) error {
	return &Error{Kind: KindBuild, Op: "launch", Path: cmd, Err: err}
}
