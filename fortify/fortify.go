package fortify

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Flags select the overflow policy of a checked formatting call. The bit
// values match the foreign runtime's flag words.
type Flags uint32

const (
	// AbortOnOverflow terminates the process when the output would not
	// have fit the declared capacity.
	AbortOnOverflow Flags = 1 << 0
	// Terminate truncates the output and forces a NUL at the last
	// writable byte instead of terminating the process.
	Terminate Flags = 1 << 1
)

// abort terminates the process the way the foreign runtime's abort does.
// Overridable so the overflow tests can observe the call.
var abort = func() {
	unix.Kill(unix.Getpid(), unix.SIGABRT)
	os.Exit(134)
}

// Sprintf formats into dst with a caller-declared capacity, the
// __sprintf_chk shape. On overflow it aborts when AbortOnOverflow is set,
// otherwise it truncates and forces a terminating NUL. The return value is
// the length the full output would have had. A capacity outside dst is
// always fatal: the declared object size is the one guarantee this shim
// exists to enforce.
func Sprintf(dst []byte, flags Flags, capacity int, format string, args ...any) int {
	if capacity <= 0 || capacity > len(dst) {
		abort()
		return -1
	}
	s := fmt.Sprintf(format, args...)
	n := len(s)
	if n > capacity-1 {
		n = capacity - 1
	}
	copy(dst, s[:n])
	dst[n] = 0
	if len(s) >= capacity {
		if flags&AbortOnOverflow != 0 {
			abort()
		} else {
			dst[capacity-1] = 0
		}
	}
	return len(s)
}

// Snprintf is the __snprintf_chk shape: the caller passes both a requested
// size and the declared object capacity. A requested size beyond the
// declared capacity is always fatal regardless of policy. On overflow of
// the requested size, Terminate selects truncation; absent it the process
// terminates.
func Snprintf(dst []byte, size int, flags Flags, capacity int, format string, args ...any) int {
	if size < 0 || size > capacity || capacity > len(dst) {
		abort()
		return -1
	}
	s := fmt.Sprintf(format, args...)
	if size == 0 {
		return len(s)
	}
	n := len(s)
	if n > size-1 {
		n = size - 1
	}
	copy(dst, s[:n])
	dst[n] = 0
	if len(s) >= size {
		if flags&Terminate != 0 {
			dst[size-1] = 0
		} else {
			abort()
		}
	}
	return len(s)
}
