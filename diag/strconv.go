package diag

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Utoa appends the base-n rendering of v to dst and returns the extended
// slice. It allocates nothing when dst has capacity, which is what the
// assert path depends on.
func Utoa(dst []byte, v uint32, base uint32) []byte {
	if base < 2 || base > 36 {
		return dst
	}
	start := len(dst)
	for {
		dst = append(dst, digits[v%base])
		v /= base
		if v == 0 {
			break
		}
	}
	// Digits were produced least significant first.
	for i, j := start, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}

// Itoa is Utoa for signed values.
func Itoa(dst []byte, v int32, base uint32) []byte {
	if v < 0 {
		dst = append(dst, '-')
		return Utoa(dst, uint32(-int64(v)), base)
	}
	return Utoa(dst, uint32(v), base)
}
