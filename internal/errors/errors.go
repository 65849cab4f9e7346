// Package errors defines the error taxonomy shared across the code-intelligence
// core: every layer (language registry, cache, compactor, index, search engine)
// returns one of these kinds so the facade can map them to a single surface
// without losing the originating context.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the taxonomy bucket an error belongs to.
type Kind string

const (
	KindUnsupported           Kind = "unsupported"
	KindLanguageDetectFailed  Kind = "language_detection_failed"
	KindParser                Kind = "parser_error"
	KindNotFound              Kind = "not_found"
	KindDimensionMismatch     Kind = "dimension_mismatch"
	KindCancelled             Kind = "cancelled"
	KindTimeout               Kind = "timeout"
	KindExecution             Kind = "execution_error"
	KindSerialization         Kind = "serialization_error"
	KindIO                    Kind = "io_error"
)

// CoreError is the unified error type the facade (C6) returns to callers.
// Narrower layer errors are wrapped so errors.As/errors.Is keep working.
type CoreError struct {
	Kind       Kind
	Path       string
	Underlying error
	msg        string
}

func (e *CoreError) Error() string {
	if e.msg != "" {
		if e.Path != "" {
			return fmt.Sprintf("%s: %s (%s)", e.Kind, e.msg, e.Path)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Underlying)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Underlying)
}

func (e *CoreError) Unwrap() error { return e.Underlying }

// Is supports errors.Is(err, ErrCancelled)-style sentinels by kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Unsupported reports a file extension the registry deliberately rejects.
// Guidance completes "should use ..." (e.g. "patch-based editing").
func Unsupported(extension, guidance string) *CoreError {
	msg := fmt.Sprintf("%s files should use %s, not AST operations", extension, guidance)
	return &CoreError{Kind: KindUnsupported, msg: msg}
}

// LanguageDetectionFailed reports a path with no usable extension.
func LanguageDetectionFailed(path string) *CoreError {
	return &CoreError{Kind: KindLanguageDetectFailed, Path: path, msg: "no extension to detect language from"}
}

// Parser reports a parser that returned no tree at all (not a syntax error).
func Parser(path string, err error) *CoreError {
	return &CoreError{Kind: KindParser, Path: path, Underlying: err, msg: "parser produced no tree"}
}

// NotFound reports a missing path or symbol.
func NotFound(what string) *CoreError {
	return &CoreError{Kind: KindNotFound, msg: what}
}

// DimensionMismatch reports a vector-store boundary violation.
func DimensionMismatch(expected, actual int) *CoreError {
	return &CoreError{Kind: KindDimensionMismatch, msg: fmt.Sprintf("expected dimension %d, got %d", expected, actual)}
}

// Cancelled reports cooperative cancellation.
func Cancelled() *CoreError {
	return &CoreError{Kind: KindCancelled, msg: "operation cancelled"}
}

// Timeout reports a deadline exceeded after the given budget.
func Timeout(ms int64) *CoreError {
	return &CoreError{Kind: KindTimeout, msg: fmt.Sprintf("exceeded %dms", ms)}
}

// Execution reports a failed external process invocation (layer-4 fallback).
func Execution(stderr string) *CoreError {
	return &CoreError{Kind: KindExecution, msg: stderr}
}

// Serialization reports a persistence round-trip failure.
func Serialization(format, msg string) *CoreError {
	return &CoreError{Kind: KindSerialization, msg: fmt.Sprintf("%s: %s", format, msg)}
}

// IO wraps a filesystem error without leaking file contents.
func IO(path string, err error) *CoreError {
	return &CoreError{Kind: KindIO, Path: path, Underlying: err, msg: "i/o failure"}
}

// IsKind reports whether err (or something it wraps) carries the given Kind.
func IsKind(err error, k Kind) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Kind == k
	}
	return false
}

// Recoverable reports whether a retry with different content/timing could
// plausibly succeed. Timeout and Cancelled are terminal for the request;
// Unsupported is always terminal; everything else may be retried.
func Recoverable(err error) bool {
	var ce *CoreError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Kind {
	case KindTimeout, KindCancelled, KindUnsupported:
		return false
	default:
		return true
	}
}
