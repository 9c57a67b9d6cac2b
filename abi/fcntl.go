package abi

import "golang.org/x/sys/unix"

// QNX open-mode flag encoding. The numeric values differ from Linux for
// everything past the access mode.
const (
	O_RDONLY   uint32 = 0o000000
	O_WRONLY   uint32 = 0o000001
	O_RDWR     uint32 = 0o000002
	O_APPEND   uint32 = 0o000010
	O_DSYNC    uint32 = 0o000020
	O_SYNC     uint32 = 0o000040
	O_RSYNC    uint32 = 0o000100
	O_NONBLOCK uint32 = 0o000200
	O_CREAT    uint32 = 0o000400
	O_TRUNC    uint32 = 0o001000
	O_EXCL     uint32 = 0o002000
	O_NOCTTY   uint32 = 0o004000
)

var openFlagMap = []struct {
	qnx  uint32
	host int
}{
	{O_RDONLY, unix.O_RDONLY},
	{O_WRONLY, unix.O_WRONLY},
	{O_RDWR, unix.O_RDWR},
	{O_APPEND, unix.O_APPEND},
	{O_DSYNC, unix.O_DSYNC},
	{O_SYNC, unix.O_SYNC},
	{O_RSYNC, unix.O_RSYNC},
	{O_NONBLOCK, unix.O_NONBLOCK},
	{O_CREAT, unix.O_CREAT},
	{O_TRUNC, unix.O_TRUNC},
	{O_EXCL, unix.O_EXCL},
	{O_NOCTTY, unix.O_NOCTTY},
}

// OpenFlagsToHost maps a QNX open-mode bitmask to the host encoding. Each
// supported bit is tested independently; bits outside the supported set
// are dropped silently in favor of forward compatibility with newer QNX
// flag values.
func OpenFlagsToHost(flags uint32) int {
	ret := 0
	for _, m := range openFlagMap {
		if flags&m.qnx != 0 {
			ret |= m.host
		}
	}
	return ret
}

// Open opens path with QNX-encoded flags, translating them to the host
// encoding. mode is consulted by the host only when O_CREAT is present.
func Open(path string, flags uint32, mode uint32) (int, error) {
	fd, err := unix.Open(path, OpenFlagsToHost(flags), mode)
	if err != nil {
		return -1, seterr(err)
	}
	return fd, nil
}

// Openat is Open relative to a directory descriptor.
func Openat(dirfd int, path string, flags uint32, mode uint32) (int, error) {
	fd, err := unix.Openat(dirfd, path, OpenFlagsToHost(flags), mode)
	if err != nil {
		return -1, seterr(err)
	}
	return fd, nil
}

// Creat creates path for writing, truncating it if it exists.
func Creat(path string, mode uint32) (int, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, mode)
	if err != nil {
		return -1, seterr(err)
	}
	return fd, nil
}
