// Package fortify implements the bounds-checked formatting entry points of
// the QNX compatibility runtime (the __sprintf_chk family).
//
// Each entry point formats against the full caller buffer, then compares
// the true output length with the caller-declared capacity. On overflow the
// policy flags select between terminating the process and truncating with a
// forced NUL. The returned value is always the would-be length of the full
// output, so callers written against the original convention can detect
// truncation themselves.
package fortify
