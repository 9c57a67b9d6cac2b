package abi

import "golang.org/x/sys/unix"

// TimevalSize is the encoded size of a Timeval in bytes, including the
// trailing 4 bytes of padding.
const TimevalSize = 16

// Timeval is the QNX seconds/microseconds pair. The microseconds field is
// narrower than the host's; narrowing truncates silently.
type Timeval struct {
	Sec  int64
	Usec int32
}

// FromHost narrows a host timeval into the QNX shape.
func (tv *Timeval) FromHost(h *unix.Timeval) {
	tv.Sec = h.Sec
	tv.Usec = int32(h.Usec)
}

// ToHost widens the QNX timeval into the host shape.
func (tv *Timeval) ToHost(h *unix.Timeval) {
	h.Sec = tv.Sec
	h.Usec = int64(tv.Usec)
}

// EncodedSize returns TimevalSize.
func (tv *Timeval) EncodedSize() int { return TimevalSize }

// Encode writes the record into b using the QNX byte layout.
func (tv *Timeval) Encode(b []byte) {
	le.PutUint64(b[0:], uint64(tv.Sec))
	le.PutUint32(b[8:], uint32(tv.Usec))
	le.PutUint32(b[12:], 0)
}

// Decode reads the record from b.
func (tv *Timeval) Decode(b []byte) {
	tv.Sec = int64(le.Uint64(b[0:]))
	tv.Usec = int32(le.Uint32(b[8:]))
}

// Utimes sets the access and modification times of path. A nil times
// pointer sets both to the current time.
func Utimes(path string, times *[2]Timeval) error {
	if times == nil {
		return seterr(unix.Utimes(path, nil))
	}
	h := make([]unix.Timeval, 2)
	times[0].ToHost(&h[0])
	times[1].ToHost(&h[1])
	return seterr(unix.Utimes(path, h))
}

// Gettimeofday fills tv with the current wall-clock time.
func Gettimeofday(tv *Timeval) error {
	var h unix.Timeval
	if err := unix.Gettimeofday(&h); err != nil {
		return seterr(err)
	}
	if tv != nil {
		tv.FromHost(&h)
	}
	return nil
}

// Settimeofday sets the wall-clock time from tv.
func Settimeofday(tv *Timeval) error {
	var h unix.Timeval
	tv.ToHost(&h)
	return seterr(unix.Settimeofday(&h))
}

// Adjtime gradually adjusts the clock by delta. When olddelta is non-nil it
// receives the adjustment still outstanding from a previous call. A nil
// delta only reads the outstanding adjustment.
func Adjtime(delta, olddelta *Timeval) error {
	var tx unix.Timex
	if delta != nil {
		tx.Modes = unix.ADJ_OFFSET_SINGLESHOT
		tx.Offset = delta.Sec*1e6 + int64(delta.Usec)
	} else {
		tx.Modes = unix.ADJ_OFFSET_SS_READ
	}
	if _, err := unix.Adjtimex(&tx); err != nil {
		return seterr(err)
	}
	if olddelta != nil {
		olddelta.Sec = tx.Offset / 1e6
		olddelta.Usec = int32(tx.Offset % 1e6)
	}
	return nil
}
