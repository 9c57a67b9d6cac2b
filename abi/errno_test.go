package abi

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestErrnoFromHostSharedRange(t *testing.T) {
	// Numbers up to ERANGE are identical in both ABIs and pass through.
	for e := unix.EPERM; e <= unix.ERANGE; e++ {
		if got := ErrnoFromHost(e); got != Errno(e) {
			t.Errorf("errno %d: got %d", e, got)
		}
	}
}

func TestErrnoFromHostDivergent(t *testing.T) {
	cases := []struct {
		host unix.Errno
		want Errno
	}{
		{unix.EDEADLK, EDEADLK},
		{unix.ENOLCK, ENOLCK},
		{unix.ENAMETOOLONG, ENAMETOOLONG},
		{unix.ENOSYS, ENOSYS},
		{unix.ELOOP, ELOOP},
		{unix.ENOTEMPTY, ENOTEMPTY},
		{unix.ENOMSG, ENOMSG},
		{unix.EIDRM, EIDRM},
		{unix.EOVERFLOW, EOVERFLOW},
	}
	for _, tc := range cases {
		if got := ErrnoFromHost(tc.host); got != tc.want {
			t.Errorf("host %d: got %d, want %d", tc.host, got, tc.want)
		}
	}

	if ENOSYS != 89 {
		t.Errorf("ENOSYS renumbering = %d, want 89", ENOSYS)
	}
}

func TestErrnoFromHostFallbacks(t *testing.T) {
	if got := ErrnoFromHost(nil); got != EOK {
		t.Errorf("nil error: got %d", got)
	}
	if got := ErrnoFromHost(errors.New("not a syscall error")); got != EIO {
		t.Errorf("foreign error type: got %d", got)
	}
	// Host errnos with no QNX counterpart collapse to EIO too.
	if got := ErrnoFromHost(unix.ERESTART); got != EIO {
		t.Errorf("unmapped errno: got %d", got)
	}
	// Wrapped syscall errors unwrap before translation.
	wrapped := fmt.Errorf("stat: %w", unix.ENOENT)
	if got := ErrnoFromHost(wrapped); got != ENOENT {
		t.Errorf("wrapped errno: got %d", got)
	}
}

func TestErrnoLocationTracksFailures(t *testing.T) {
	loc := ErrnoLocation()
	if loc == nil {
		t.Fatal("nil errno location")
	}
	if ErrnoLocation() != loc {
		t.Fatal("errno location not stable")
	}

	*loc = EOK
	var st Stat_t
	if err := Stat(filepath.Join(t.TempDir(), "absent"), &st); err == nil {
		t.Fatal("expected stat failure")
	}
	if *loc != ENOENT {
		t.Errorf("errno cell = %d after failed stat, want ENOENT", *loc)
	}

	// Success does not clear the cell; only failures write it.
	if err := Stat("/", &st); err != nil {
		t.Fatalf("stat /: %v", err)
	}
	if *loc != ENOENT {
		t.Errorf("errno cell mutated by success: %d", *loc)
	}
}

func TestErrnoError(t *testing.T) {
	if msg := ENOSYS.Error(); msg != "qnx errno 89" {
		t.Errorf("Error() = %q", msg)
	}
}
