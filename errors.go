package qkernel

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the kernel. Every error returned by an exported
// function wraps exactly one of these, so callers can branch with errors.Is.
var (
	ErrDomain    = errors.New("domain")
	ErrDimension = errors.New("dimension mismatch")
	ErrNumeric   = errors.New("numeric")
	ErrDiverged  = errors.New("optimization diverged")
)

/*
KernelError carries the operation that failed alongside its kind. The
presentation layer maps Kind to a human-readable notice; Detail is for logs.
*/
type KernelError struct {
	Op     string
	Kind   error
	Detail string
}

func (e *KernelError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *KernelError) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...any) error {
	return &KernelError{
		Op:     op,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// KindOf reports which of the kernel error kinds err wraps, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrDomain, ErrDimension, ErrNumeric, ErrDiverged} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// kindLabel is the metric label for an error kind.
func kindLabel(err error) string {
	switch KindOf(err) {
	case ErrDomain:
		return "domain"
	case ErrDimension:
		return "dimension"
	case ErrNumeric:
		return "numeric"
	case ErrDiverged:
		return "diverged"
	default:
		return "unknown"
	}
}
