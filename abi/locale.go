package abi

import "sync"

// charMax marks a numeric lconv field as unavailable, as CHAR_MAX does in
// the C locale model.
const charMax byte = 0x7f

// Lconv is the QNX localeconv snapshot. String fields are shared with the
// host snapshot, not duplicated. The fields past the host locale model
// (FracGrouping through Reserved) have no host counterpart and are always
// zeroed.
type Lconv struct {
	// Controlled by LC_MONETARY.
	CurrencySymbol  string
	IntCurrSymbol   string
	MonDecimalPoint string
	MonGrouping     string
	MonThousandsSep string
	NegativeSign    string
	PositiveSign    string
	FracDigits      byte
	IntFracDigits   byte
	NCSPrecedes     byte
	NSepBySpace     byte
	NSignPosn       byte
	PCSPrecedes     byte
	PSepBySpace     byte
	PSignPosn       byte
	IntNCSPrecedes  byte
	IntNSepBySpace  byte
	IntNSignPosn    byte
	IntPCSPrecedes  byte
	IntPSepBySpace  byte
	IntPSignPosn    byte

	// Controlled by LC_NUMERIC.
	DecimalPoint string
	ThousandsSep string
	Grouping     string

	// QNX extensions with no host counterpart.
	FracGrouping string
	FracSep      string
	False        string
	True         string

	// Controlled by LC_MESSAGES.
	No       string
	Yes      string
	NoStr    string
	YesStr   string
	Reserved [8]string
}

var (
	localeOnce     sync.Once
	localeSnapshot Lconv

	// localeComputes counts snapshot computations; the idempotence test
	// asserts it never passes one.
	localeComputes int
)

// Localeconv returns the locale numeric/monetary snapshot. It is computed
// once per process and immutable afterwards; repeated calls return the
// same cached record.
func Localeconv() *Lconv {
	localeOnce.Do(func() {
		localeComputes++
		hostLconv(&localeSnapshot)
	})
	return &localeSnapshot
}

// hostLconv fills lc from the host locale model. The replaced runtime pins
// the C locale at startup, so the snapshot carries the POSIX C locale
// values. Every QNX-only extension field is explicitly zeroed, never left
// to chance.
func hostLconv(lc *Lconv) {
	lc.DecimalPoint = "."
	lc.ThousandsSep = ""
	lc.Grouping = ""

	lc.CurrencySymbol = ""
	lc.IntCurrSymbol = ""
	lc.MonDecimalPoint = ""
	lc.MonThousandsSep = ""
	lc.MonGrouping = ""
	lc.PositiveSign = ""
	lc.NegativeSign = ""

	lc.FracDigits = charMax
	lc.IntFracDigits = charMax
	lc.PCSPrecedes = charMax
	lc.PSepBySpace = charMax
	lc.PSignPosn = charMax
	lc.NCSPrecedes = charMax
	lc.NSepBySpace = charMax
	lc.NSignPosn = charMax
	lc.IntPCSPrecedes = charMax
	lc.IntPSepBySpace = charMax
	lc.IntPSignPosn = charMax
	lc.IntNCSPrecedes = charMax
	lc.IntNSepBySpace = charMax
	lc.IntNSignPosn = charMax

	lc.FracGrouping = ""
	lc.FracSep = ""
	lc.False = ""
	lc.True = ""

	lc.No = ""
	lc.Yes = ""
	lc.NoStr = ""
	lc.YesStr = ""
	for i := range lc.Reserved {
		lc.Reserved[i] = ""
	}
}
