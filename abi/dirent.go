package abi

import (
	"bytes"

	"golang.org/x/sys/unix"

	qerrors "github.com/qolproject/qnxcompat/errors"
)

// DirentHeaderSize is the fixed part of a QNX directory entry record; the
// NUL-terminated name follows inline.
const DirentHeaderSize = 20

// dircntl commands. The control operation is accepted and ignored, as in
// the runtime being replaced.
const (
	DGetFlag = 1
	DSetFlag = 2
)

// Dirent is one QNX directory listing record. Namelen and Reclen are
// derived from the name actually written, never from a host-supplied
// counter.
type Dirent struct {
	Ino    uint64
	Offset uint64
	Name   string
}

// EncodedLen returns the encoded record length: header, name, NUL,
// rounded up to 8 bytes.
func (d *Dirent) EncodedLen() int {
	return (DirentHeaderSize + len(d.Name) + 1 + 7) &^ 7
}

// Encode writes the record into b and returns its record length.
func (d *Dirent) Encode(b []byte) int {
	n := d.EncodedLen()
	le.PutUint64(b[0:], d.Ino)
	le.PutUint64(b[8:], d.Offset)
	le.PutUint16(b[16:], uint16(n))
	le.PutUint16(b[18:], uint16(len(d.Name)))
	copy(b[DirentHeaderSize:], d.Name)
	for i := DirentHeaderSize + len(d.Name); i < n; i++ {
		b[i] = 0
	}
	return n
}

// Host getdents64 record offsets.
const (
	hostDirentInoOff    = 0
	hostDirentOffOff    = 8
	hostDirentReclenOff = 16
	hostDirentNameOff   = 19
)

// TranslateDirents rewrites n bytes of host getdents64 records at the
// start of buf into QNX-layout records in the same buffer, returning the
// translated length. The two layouts overlap, so every host record is
// staged into a local value before any QNX field is written; nothing is
// read from buf once writing starts. Fails with EOVERFLOW if the
// translated stream would not fit in buf.
func TranslateDirents(buf []byte, n int) (int, error) {
	var staged []Dirent
	for p := 0; p < n; {
		if p+hostDirentNameOff > n {
			return 0, seterr(qerrors.MalformedRecord(qerrors.PhaseDecode, "dirent", p))
		}
		reclen := int(le.Uint16(buf[p+hostDirentReclenOff:]))
		if reclen <= hostDirentNameOff || p+reclen > n {
			return 0, seterr(qerrors.MalformedRecord(qerrors.PhaseDecode, "dirent", p))
		}
		name := buf[p+hostDirentNameOff : p+reclen]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		staged = append(staged, Dirent{
			Ino:    le.Uint64(buf[p+hostDirentInoOff:]),
			Offset: le.Uint64(buf[p+hostDirentOffOff:]),
			Name:   string(name),
		})
		p += reclen
	}
	w := 0
	for i := range staged {
		if need := w + staged[i].EncodedLen(); need > len(buf) {
			return 0, seterr(qerrors.Overflow(qerrors.PhaseEncode, "dirent", need, len(buf)))
		}
		w += staged[i].Encode(buf[w:])
	}
	return w, nil
}

const (
	direntBufSize = 8192
	// A QNX record is at most 8 bytes longer than the host record it
	// replaces, and host records are at least 24 bytes, so limiting the
	// host read to 3/4 of the buffer guarantees the translated stream
	// always fits.
	direntReadLimit = direntBufSize * 3 / 4
)

// Dir iterates a directory stream, presenting host entries in the QNX
// record layout.
type Dir struct {
	fd     int
	buf    [direntBufSize]byte
	n, off int
}

// OpenDir opens a directory stream for path.
func OpenDir(path string) (*Dir, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, seterr(err)
	}
	return &Dir{fd: fd}, nil
}

// Read returns the next directory entry, or nil at end of stream. The
// entry's name length always equals the byte length of its name, and the
// translated record occupies no more space than the host entry did.
func (d *Dir) Read() (*Dirent, error) {
	for d.off >= d.n {
		n, err := unix.Getdents(d.fd, d.buf[:direntReadLimit])
		if err != nil {
			return nil, seterr(err)
		}
		if n == 0 {
			return nil, nil
		}
		if d.n, err = TranslateDirents(d.buf[:], n); err != nil {
			return nil, err
		}
		d.off = 0
	}
	b := d.buf[d.off:]
	reclen := int(le.Uint16(b[16:]))
	namelen := int(le.Uint16(b[18:]))
	ent := &Dirent{
		Ino:    le.Uint64(b[0:]),
		Offset: le.Uint64(b[8:]),
		Name:   string(b[DirentHeaderSize : DirentHeaderSize+namelen]),
	}
	d.off += reclen
	return ent, nil
}

// Rewind repositions the stream at the beginning of the directory.
func (d *Dir) Rewind() error {
	if _, err := unix.Seek(d.fd, 0, 0); err != nil {
		return seterr(err)
	}
	d.n, d.off = 0, 0
	return nil
}

// Control implements dircntl. Both flag commands are accepted and ignored.
func (d *Dir) Control(cmd int, arg int) int {
	return 0
}

// Fd returns the underlying descriptor.
func (d *Dir) Fd() int { return d.fd }

// Close releases the directory stream.
func (d *Dir) Close() error {
	return seterr(unix.Close(d.fd))
}
