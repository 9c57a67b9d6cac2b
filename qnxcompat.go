package qnxcompat

// PointerSize is the width of a pointer in the QNX ABI targeted by this
// library. Both sides of every translation assume an LP64 little-endian
// machine; the two ABIs share the instruction set, only structure shapes
// and numeric encodings differ.
const PointerSize = 8

// Layout is implemented by fixed-shape records of the QNX ABI. Encode and
// Decode operate on a caller-supplied buffer of at least EncodedSize bytes
// and reproduce the record's exact field widths, ordering and padding.
type Layout interface {
	EncodedSize() int
	Encode(b []byte)
	Decode(b []byte)
}
