package abi

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

var le = binary.LittleEndian

// Timespec is the QNX seconds/nanoseconds pair, identical in width to the
// host representation.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// TimespecSize is the encoded size of a Timespec in bytes.
const TimespecSize = 16

// StatSize is the encoded size of a Stat_t in bytes.
const StatSize = 120

// Stat_t is the QNX stat record. It carries the three legacy 32-bit
// timestamps alongside the full-precision pairs; both views are populated
// from the same host timestamps. Field order and widths are pinned by
// TestStatLayout.
type Stat_t struct {
	Ino       uint64
	Size      uint64
	Dev       uint32
	Rdev      uint32
	Uid       uint32
	Gid       uint32
	OldMtime  uint32
	OldAtime  uint32
	OldCtime  uint32
	Mode      uint32
	Nlink     uint32
	Blocksize uint32
	Nblocks   uint32
	Blksize   uint32
	Blocks    uint64
	Mtim      Timespec
	Atim      Timespec
	Ctim      Timespec
}

// FromHost populates every QNX field from a host stat result. Narrower
// destination fields are truncated, never sign-extended. The block fields
// are mapped verbatim from the host blksize/blocks pair: Blocksize receives
// the preferred I/O size rather than the allocation unit, and Blocks keeps
// the host's 512-byte unit. See TestStatBlockFieldSimplification.
func (s *Stat_t) FromHost(h *unix.Stat_t) {
	s.Ino = h.Ino
	s.Size = uint64(h.Size)
	s.Dev = uint32(h.Dev)
	s.Rdev = uint32(h.Rdev)
	s.Uid = h.Uid
	s.Gid = h.Gid
	s.OldMtime = uint32(h.Mtim.Sec)
	s.OldAtime = uint32(h.Atim.Sec)
	s.OldCtime = uint32(h.Ctim.Sec)
	s.Mode = h.Mode
	s.Nlink = uint32(h.Nlink)
	s.Blocksize = uint32(h.Blksize)
	s.Nblocks = uint32(h.Blocks)
	s.Blksize = uint32(h.Blksize)
	s.Blocks = uint64(h.Blocks)
	s.Mtim = Timespec{Sec: h.Mtim.Sec, Nsec: h.Mtim.Nsec}
	s.Atim = Timespec{Sec: h.Atim.Sec, Nsec: h.Atim.Nsec}
	s.Ctim = Timespec{Sec: h.Ctim.Sec, Nsec: h.Ctim.Nsec}
}

// EncodedSize returns StatSize.
func (s *Stat_t) EncodedSize() int { return StatSize }

// Encode writes the record into b using the QNX byte layout.
func (s *Stat_t) Encode(b []byte) {
	le.PutUint64(b[0:], s.Ino)
	le.PutUint64(b[8:], s.Size)
	le.PutUint32(b[16:], s.Dev)
	le.PutUint32(b[20:], s.Rdev)
	le.PutUint32(b[24:], s.Uid)
	le.PutUint32(b[28:], s.Gid)
	le.PutUint32(b[32:], s.OldMtime)
	le.PutUint32(b[36:], s.OldAtime)
	le.PutUint32(b[40:], s.OldCtime)
	le.PutUint32(b[44:], s.Mode)
	le.PutUint32(b[48:], s.Nlink)
	le.PutUint32(b[52:], s.Blocksize)
	le.PutUint32(b[56:], s.Nblocks)
	le.PutUint32(b[60:], s.Blksize)
	le.PutUint64(b[64:], s.Blocks)
	encodeTimespec(b[72:], s.Mtim)
	encodeTimespec(b[88:], s.Atim)
	encodeTimespec(b[104:], s.Ctim)
}

// Decode reads the record from b.
func (s *Stat_t) Decode(b []byte) {
	s.Ino = le.Uint64(b[0:])
	s.Size = le.Uint64(b[8:])
	s.Dev = le.Uint32(b[16:])
	s.Rdev = le.Uint32(b[20:])
	s.Uid = le.Uint32(b[24:])
	s.Gid = le.Uint32(b[28:])
	s.OldMtime = le.Uint32(b[32:])
	s.OldAtime = le.Uint32(b[36:])
	s.OldCtime = le.Uint32(b[40:])
	s.Mode = le.Uint32(b[44:])
	s.Nlink = le.Uint32(b[48:])
	s.Blocksize = le.Uint32(b[52:])
	s.Nblocks = le.Uint32(b[56:])
	s.Blksize = le.Uint32(b[60:])
	s.Blocks = le.Uint64(b[64:])
	s.Mtim = decodeTimespec(b[72:])
	s.Atim = decodeTimespec(b[88:])
	s.Ctim = decodeTimespec(b[104:])
}

func encodeTimespec(b []byte, ts Timespec) {
	le.PutUint64(b[0:], uint64(ts.Sec))
	le.PutUint64(b[8:], uint64(ts.Nsec))
}

func decodeTimespec(b []byte) Timespec {
	return Timespec{
		Sec:  int64(le.Uint64(b[0:])),
		Nsec: int64(le.Uint64(b[8:])),
	}
}

// Stat queries path metadata, following symlinks.
func Stat(path string, st *Stat_t) error {
	var h unix.Stat_t
	if err := unix.Stat(path, &h); err != nil {
		return seterr(err)
	}
	if st != nil {
		st.FromHost(&h)
	}
	return nil
}

// Lstat queries path metadata without following a trailing symlink.
func Lstat(path string, st *Stat_t) error {
	var h unix.Stat_t
	if err := unix.Lstat(path, &h); err != nil {
		return seterr(err)
	}
	if st != nil {
		st.FromHost(&h)
	}
	return nil
}

// Fstat queries metadata of an open descriptor.
func Fstat(fd int, st *Stat_t) error {
	var h unix.Stat_t
	if err := unix.Fstat(fd, &h); err != nil {
		return seterr(err)
	}
	if st != nil {
		st.FromHost(&h)
	}
	return nil
}

// Fstatat queries metadata of a path relative to a directory descriptor.
// flags pass through to the host call unchanged.
func Fstatat(dirfd int, path string, st *Stat_t, flags int) error {
	var h unix.Stat_t
	if err := unix.Fstatat(dirfd, path, &h, flags); err != nil {
		return seterr(err)
	}
	if st != nil {
		st.FromHost(&h)
	}
	return nil
}
