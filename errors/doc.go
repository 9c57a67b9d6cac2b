// Package errors provides structured error types for the compatibility
// library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category), and carry the host errno the condition maps to, so
// callers translating for the foreign ABI can recover it with errors.As.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Record("dirent").
//		Offset(24).
//		Detail("record length runs past the buffer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MalformedRecord(errors.PhaseDecode, "dirent", off)
//	err := errors.Overflow(errors.PhaseEncode, "dirent", need, have)
//
// All errors implement the standard error interface and support
// errors.Is/As.
package errors
