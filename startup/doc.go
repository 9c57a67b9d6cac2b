// Package startup carries the process-startup support surface of the QNX
// compatibility runtime: constructor/destructor array iteration hooks and
// the terminal-geometry query.
//
// A repointed binary's early-startup code hands its preinit, init and fini
// arrays to these hooks instead of its original runtime's loader.
package startup
