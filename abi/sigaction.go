package abi

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// SigMax is the highest signal number representable in a QNX signal mask.
const SigMax = 64

// Handler sentinels shared by both ABIs.
const (
	SigDfl uint64 = 0
	SigIgn uint64 = 1
)

// sigSetWords is the QNX mask width: two 32-bit words.
const sigSetWords = 2

// hostSigsetBytes is the width of the kernel signal mask passed to
// rt_sigaction. The straight 64-bit mask copy below is only valid while
// the two widths are declared equal; this fails to compile otherwise.
const hostSigsetBytes = 8

var _ [1]struct{} = [hostSigsetBytes - sigSetWords*4 + 1]struct{}{}

// SigSet is the QNX two-word signal mask, a bounded set over signals
// 1..SigMax.
type SigSet struct {
	bits [sigSetWords]uint32
}

// Member reports whether sig is in the set.
func (s *SigSet) Member(sig int) bool {
	if sig < 1 || sig > SigMax {
		return false
	}
	return s.bits[(sig-1)/32]&(1<<uint((sig-1)%32)) != 0
}

// Add inserts sig into the set.
func (s *SigSet) Add(sig int) {
	if sig < 1 || sig > SigMax {
		return
	}
	s.bits[(sig-1)/32] |= 1 << uint((sig-1)%32)
}

// Del removes sig from the set.
func (s *SigSet) Del(sig int) {
	if sig < 1 || sig > SigMax {
		return
	}
	s.bits[(sig-1)/32] &^= 1 << uint((sig-1)%32)
}

// Fill inserts every signal.
func (s *SigSet) Fill() {
	s.bits[0] = ^uint32(0)
	s.bits[1] = ^uint32(0)
}

// Uint64 returns the mask as the single 64-bit block both ABIs store it
// as on a little-endian machine.
func (s *SigSet) Uint64() uint64 {
	return uint64(s.bits[0]) | uint64(s.bits[1])<<32
}

// SetUint64 assigns the mask from its 64-bit block form.
func (s *SigSet) SetUint64(v uint64) {
	s.bits[0] = uint32(v)
	s.bits[1] = uint32(v >> 32)
}

// ToHost widens the mask into the host thread-mask representation.
func (s *SigSet) ToHost(h *unix.Sigset_t) {
	*h = unix.Sigset_t{}
	h.Val[0] = s.Uint64()
}

// SigactionSize is the encoded size of a Sigaction in bytes, including the
// trailing pad.
const SigactionSize = 24

// Sigaction is the QNX signal disposition record. Handler holds the union
// of the plain and extended handler pointers; both ABIs use a
// pointer-sized handler, so it copies verbatim.
type Sigaction struct {
	Handler uint64
	Flags   int32
	Mask    SigSet
}

// EncodedSize returns SigactionSize.
func (sa *Sigaction) EncodedSize() int { return SigactionSize }

// Encode writes the record into b using the QNX byte layout.
func (sa *Sigaction) Encode(b []byte) {
	le.PutUint64(b[0:], sa.Handler)
	le.PutUint32(b[8:], uint32(sa.Flags))
	le.PutUint64(b[12:], sa.Mask.Uint64())
	le.PutUint32(b[20:], 0)
}

// Decode reads the record from b.
func (sa *Sigaction) Decode(b []byte) {
	sa.Handler = le.Uint64(b[0:])
	sa.Flags = int32(le.Uint32(b[8:]))
	sa.Mask.SetUint64(le.Uint64(b[12:]))
}

// hostSigaction mirrors the kernel rt_sigaction argument layout on amd64.
type hostSigaction struct {
	handler  uint64
	flags    uint64
	restorer uint64
	mask     uint64
}

// ToHost translates the record into the kernel layout. The handler and
// flags copy verbatim (flags zero-extended); the mask is a raw 64-bit
// block copy.
func (sa *Sigaction) ToHost(h *hostSigaction) {
	h.handler = sa.Handler
	h.flags = uint64(uint32(sa.Flags))
	h.mask = sa.Mask.Uint64()
}

// FromHost translates a kernel-layout record into the QNX shape.
func (sa *Sigaction) FromHost(h *hostSigaction) {
	sa.Handler = h.handler
	sa.Flags = int32(uint32(h.flags))
	sa.Mask.SetUint64(h.mask)
}

// SavedDisposition is an opaque capture of a host signal disposition. It
// keeps the kernel record whole, including the restorer trampoline the QNX
// shape has no field for, so Restore is exact.
type SavedDisposition struct {
	sig int
	h   hostSigaction
}

// SaveDisposition captures the current host disposition of sig.
func SaveDisposition(sig int) (SavedDisposition, error) {
	d := SavedDisposition{sig: sig}
	_, _, errno := unix.Syscall6(unix.SYS_RT_SIGACTION,
		uintptr(sig), 0, uintptr(unsafe.Pointer(&d.h)), hostSigsetBytes, 0, 0)
	if errno != 0 {
		return d, seterr(errno)
	}
	return d, nil
}

// Restore reinstalls the captured disposition.
func (d *SavedDisposition) Restore() error {
	_, _, errno := unix.Syscall6(unix.SYS_RT_SIGACTION,
		uintptr(d.sig), uintptr(unsafe.Pointer(&d.h)), 0, hostSigsetBytes, 0, 0)
	if errno != 0 {
		return seterr(errno)
	}
	return nil
}

// RtSigaction gets and/or sets the host disposition of sig using the QNX
// record shape. Either pointer may be nil. Dispositions with handlers
// other than SigDfl and SigIgn cannot be installed from here: the handler
// pointer would have to be a real function in the foreign image.
func RtSigaction(sig int, act, oact *Sigaction) error {
	var hact, hoact hostSigaction
	var actp, oactp unsafe.Pointer
	if act != nil {
		act.ToHost(&hact)
		actp = unsafe.Pointer(&hact)
	}
	if oact != nil {
		oactp = unsafe.Pointer(&hoact)
	}
	_, _, errno := unix.Syscall6(unix.SYS_RT_SIGACTION,
		uintptr(sig), uintptr(actp), uintptr(oactp), hostSigsetBytes, 0, 0)
	if errno != 0 {
		return seterr(errno)
	}
	if oact != nil {
		oact.FromHost(&hoact)
	}
	return nil
}
