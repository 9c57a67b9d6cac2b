package errors

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // host record to staged value
	PhaseEncode Phase = "encode" // staged value to foreign record
	PhaseStage  Phase = "stage"  // parent-side attribute staging
	PhaseSpawn  Phase = "spawn"  // process creation
	PhaseExec   Phase = "exec"   // image replacement
)

// Kind categorizes the error
type Kind string

const (
	KindMalformed     Kind = "malformed"      // record does not parse
	KindOverflow      Kind = "overflow"       // translated stream exceeds buffer
	KindUnsupported   Kind = "unsupported"    // operation has no host equivalent
	KindBadDescriptor Kind = "bad_descriptor" // descriptor slot or source invalid
	KindInvalidInput  Kind = "invalid_input"  // caller-supplied argument rejected
)

// Error is the structured error type used throughout the library. Errno
// holds the host error number the condition maps to; Unwrap exposes it so
// errno translation sees through the structure.
type Error struct {
	Phase  Phase
	Kind   Kind
	Record string
	Offset int
	Detail string
	Errno  unix.Errno
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Record != "" {
		b.WriteString(" in ")
		b.WriteString(e.Record)
		b.WriteString(" record")
	}
	if e.Offset > 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error, preferring an explicit cause over
// the attached errno.
func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	if e.Errno != 0 {
		return e.Errno
	}
	return nil
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Record names the record layout involved
func (b *Builder) Record(name string) *Builder {
	b.err.Record = name
	return b
}

// Offset sets the byte offset the error was detected at
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Errno attaches the host error number the condition maps to
func (b *Builder) Errno(errno unix.Errno) *Builder {
	b.err.Errno = errno
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedRecord reports a record that does not parse at the given offset.
// Maps to EINVAL.
func MalformedRecord(phase Phase, record string, offset int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Record: record,
		Offset: offset,
		Errno:  unix.EINVAL,
	}
}

// Overflow reports a translated stream that does not fit its buffer. Maps
// to EOVERFLOW.
func Overflow(phase Phase, record string, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Record: record,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
		Errno:  unix.EOVERFLOW,
	}
}

// Unsupported reports an operation with no host equivalent. Maps to
// ENOSYS.
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
		Errno:  unix.ENOSYS,
	}
}

// BadDescriptor reports an invalid descriptor slot or source. Maps to
// EBADF.
func BadDescriptor(phase Phase, fd int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadDescriptor,
		Detail: fmt.Sprintf("descriptor %d", fd),
		Errno:  unix.EBADF,
	}
}

// InvalidInput reports a rejected caller argument. Maps to EINVAL.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Errno:  unix.EINVAL,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
