package abi

import (
	"sync"
	"testing"
)

func TestLocaleconvIdempotent(t *testing.T) {
	first := Localeconv()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Localeconv(); got != first {
				t.Error("Localeconv returned a different snapshot")
			}
		}()
	}
	wg.Wait()

	if localeComputes != 1 {
		t.Errorf("snapshot computed %d times", localeComputes)
	}
}

func TestLocaleconvCValues(t *testing.T) {
	lc := Localeconv()

	if lc.DecimalPoint != "." {
		t.Errorf("DecimalPoint = %q", lc.DecimalPoint)
	}
	if lc.ThousandsSep != "" || lc.Grouping != "" {
		t.Errorf("numeric separators not empty: %q %q", lc.ThousandsSep, lc.Grouping)
	}
	for _, f := range []byte{
		lc.FracDigits, lc.IntFracDigits,
		lc.PCSPrecedes, lc.PSepBySpace, lc.PSignPosn,
		lc.NCSPrecedes, lc.NSepBySpace, lc.NSignPosn,
		lc.IntPCSPrecedes, lc.IntPSepBySpace, lc.IntPSignPosn,
		lc.IntNCSPrecedes, lc.IntNSepBySpace, lc.IntNSignPosn,
	} {
		if f != charMax {
			t.Errorf("monetary byte field = %#x, want CHAR_MAX", f)
		}
	}
}

func TestLocaleconvExtensionsZeroed(t *testing.T) {
	lc := Localeconv()

	for name, v := range map[string]string{
		"FracGrouping": lc.FracGrouping,
		"FracSep":      lc.FracSep,
		"False":        lc.False,
		"True":         lc.True,
		"No":           lc.No,
		"Yes":          lc.Yes,
		"NoStr":        lc.NoStr,
		"YesStr":       lc.YesStr,
	} {
		if v != "" {
			t.Errorf("extension field %s = %q, want empty", name, v)
		}
	}
	for i, v := range lc.Reserved {
		if v != "" {
			t.Errorf("Reserved[%d] = %q, want empty", i, v)
		}
	}
}
