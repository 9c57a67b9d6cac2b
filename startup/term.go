package startup

import "golang.org/x/term"

// Fallback geometry reported when fd is not a terminal, matching the
// fixed answer of the stub being replaced.
const (
	defaultRows = 24
	defaultCols = 80
)

// TcGetSize reports the terminal geometry of fd. Descriptors without a
// terminal get the historical 24x80 answer rather than an error; callers
// of the original never checked one.
func TcGetSize(fd int) (rows, cols int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return defaultRows, defaultCols
	}
	return h, w
}
