package qnxcompat_test

import (
	"testing"

	qnxcompat "github.com/qolproject/qnxcompat"
	"github.com/qolproject/qnxcompat/abi"
)

// The fixed-shape records all speak Layout.
var (
	_ qnxcompat.Layout = (*abi.Stat_t)(nil)
	_ qnxcompat.Layout = (*abi.Sigaction)(nil)
	_ qnxcompat.Layout = (*abi.Timeval)(nil)
)

func TestLayoutSizes(t *testing.T) {
	cases := []struct {
		name string
		l    qnxcompat.Layout
		want int
	}{
		{"stat", &abi.Stat_t{}, abi.StatSize},
		{"sigaction", &abi.Sigaction{}, abi.SigactionSize},
		{"timeval", &abi.Timeval{}, abi.TimevalSize},
	}
	for _, tc := range cases {
		if got := tc.l.EncodedSize(); got != tc.want {
			t.Errorf("%s encoded size %d, want %d", tc.name, got, tc.want)
		}
	}
}
