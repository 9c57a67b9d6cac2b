// Package qnxcompat provides a QNX-to-Linux binary compatibility runtime core.
//
// A QNX binary whose ELF interpreter and libc dependency have been repointed
// at this runtime calls what it believes are its native libc entry points.
// This library implements those entry points: it translates arguments from
// the QNX ABI's byte layouts and flag encodings into their Linux equivalents,
// invokes the corresponding host system call, and translates the result back,
// preserving the QNX error-reporting convention.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	qnxcompat/       Root package with the Layout record interface
//	├── abi/         Layout and flag translators: stat, dirent, sigaction,
//	│                timeval, localeconv, open flags, errno numbering
//	├── errors/      Structured translation errors carrying the host errno
//	├── fortify/     Bounds-checked formatting shims (__sprintf_chk family)
//	├── diag/        Assert failure reporting and the slogf system-log shim
//	├── spawn/       QNX spawn() emulation over fork/exec, with the
//	│                P_WAIT/P_NOWAIT/P_OVERLAY convenience family
//	├── startup/     Constructor/destructor array hooks and terminal stub
//	└── cmd/qnxrun/  Launcher for repointed QNX binaries
//
// # Translation contract
//
// Translators never fail on their own: they only reshape already-successful
// host results. A failing host call passes its errno through unchanged, and
// the destination record is left untouched in that case. Binary fidelity is
// width- and order-exact; see the layout tests in abi for the pinned offsets.
//
// The external preparation step that rewrites a target binary's interpreter
// path and declared library dependency is out of scope; this library only
// guarantees the compatible entry-point surface.
package qnxcompat
