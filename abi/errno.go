package abi

import (
	"errors"
	"strconv"

	"golang.org/x/sys/unix"
)

// Errno is an error number in the QNX numbering. Values up to ERANGE match
// Linux; above that the two ABIs diverge and ErrnoFromHost renumbers.
type Errno uint32

const (
	EOK          Errno = 0
	EPERM        Errno = 1
	ENOENT       Errno = 2
	ESRCH        Errno = 3
	EINTR        Errno = 4
	EIO          Errno = 5
	ENXIO        Errno = 6
	E2BIG        Errno = 7
	ENOEXEC      Errno = 8
	EBADF        Errno = 9
	ECHILD       Errno = 10
	EAGAIN       Errno = 11
	ENOMEM       Errno = 12
	EACCES       Errno = 13
	EFAULT       Errno = 14
	ENOTBLK      Errno = 15
	EBUSY        Errno = 16
	EEXIST       Errno = 17
	EXDEV        Errno = 18
	ENODEV       Errno = 19
	ENOTDIR      Errno = 20
	EISDIR       Errno = 21
	EINVAL       Errno = 22
	ENFILE       Errno = 23
	EMFILE       Errno = 24
	ENOTTY       Errno = 25
	ETXTBSY      Errno = 26
	EFBIG        Errno = 27
	ENOSPC       Errno = 28
	ESPIPE       Errno = 29
	EROFS        Errno = 30
	EMLINK       Errno = 31
	EPIPE        Errno = 32
	EDOM         Errno = 33
	ERANGE       Errno = 34
	ENOMSG       Errno = 35
	EIDRM        Errno = 36
	EDEADLK      Errno = 45
	ENOLCK       Errno = 46
	ENAMETOOLONG Errno = 78
	EOVERFLOW    Errno = 79
	ENOSYS       Errno = 89
	ELOOP        Errno = 90
	ENOTEMPTY    Errno = 93

	EWOULDBLOCK = EAGAIN
)

func (e Errno) Error() string {
	return "qnx errno " + strconv.FormatUint(uint64(e), 10)
}

// ErrnoFromHost translates a host error into the QNX numbering. Error
// numbers shared by the two ABIs pass through numerically; divergent ones
// are renumbered. Unrecognized host errors collapse to EIO.
func ErrnoFromHost(err error) Errno {
	if err == nil {
		return EOK
	}
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return EIO
	}
	if errno <= unix.ERANGE {
		return Errno(errno)
	}
	switch errno {
	case unix.EDEADLK:
		return EDEADLK
	case unix.ENAMETOOLONG:
		return ENAMETOOLONG
	case unix.ENOLCK:
		return ENOLCK
	case unix.ENOSYS:
		return ENOSYS
	case unix.ENOTEMPTY:
		return ENOTEMPTY
	case unix.ELOOP:
		return ELOOP
	case unix.ENOMSG:
		return ENOMSG
	case unix.EIDRM:
		return EIDRM
	case unix.EOVERFLOW:
		return EOVERFLOW
	default:
		return EIO
	}
}

// lastErrno is the process-wide error cell. Plain writes, no
// synchronization: the foreign convention it mirrors has none either.
var lastErrno Errno

// ErrnoLocation returns the address of the process-wide error cell, the
// equivalent of the foreign runtime's errno-pointer accessor.
func ErrnoLocation() *Errno {
	return &lastErrno
}

// seterr records the translated errno and passes the host error through.
func seterr(err error) error {
	if err != nil {
		lastErrno = ErrnoFromHost(err)
	}
	return err
}
