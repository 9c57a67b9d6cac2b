package diag

import (
	"os"

	"golang.org/x/sys/unix"
)

// stderrFd is the descriptor assertion reports go to. Overridable so the
// tests can capture the raw byte stream.
var stderrFd = int(os.Stderr.Fd())

// abort terminates the process. Overridable for the same reason.
var abort = func() {
	unix.Kill(unix.Getpid(), unix.SIGABRT)
	os.Exit(134)
}

// AssertFail reports a failed assertion and terminates the process. The
// report uses only direct unbuffered writes and a hand-rendered line
// number: the buffered formatting subsystem cannot be assumed intact at
// this point. fn may be empty.
func AssertFail(expr, file string, line uint32, fn string) {
	var lbuf [10]byte
	if fn != "" {
		writeString(stderrFd, "In function ")
		writeString(stderrFd, fn)
		writeString(stderrFd, " -- ")
	}
	writeString(stderrFd, file)
	writeString(stderrFd, ":")
	write(stderrFd, Utoa(lbuf[:0], line, 10))
	writeString(stderrFd, " ")
	writeString(stderrFd, expr)
	writeString(stderrFd, " -- assertion failed\n")
	abort()
}

func writeString(fd int, s string) {
	write(fd, []byte(s))
}

func write(fd int, b []byte) {
	// Partial writes and errors are ignored: there is no way left to
	// report them.
	unix.Write(fd, b)
}
