// Package abi implements the layout and flag translators of the QNX
// compatibility runtime.
//
// Each translator pairs a QNX-layout record with its Linux equivalent and
// converts between the two with exact field widths and ordering. Wrappers
// such as Stat, Open and Utimes invoke the host system call first and only
// translate on success; a failing host call surfaces its unix.Errno
// unchanged and leaves the destination record untouched.
//
// Numeric fields narrower on the QNX side are truncated, never
// sign-extended. The Linux-to-QNX errno renumbering lives in ErrnoFromHost,
// and every wrapper additionally records the translated errno in a
// process-wide cell reachable through ErrnoLocation, reproducing the
// foreign runtime's error-reporting convention.
package abi
