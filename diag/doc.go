// Package diag implements the failure-reporting shims of the QNX
// compatibility runtime: the assert handler and the slogf system logger.
//
// Assertion failures may fire while the formatting and stream subsystems
// are themselves corrupted, so AssertFail writes its report with raw,
// unbuffered writes to standard error and renders the line number by hand.
// Slogf has no such constraint and routes through the package's zap logger.
package diag
