// Package spawn emulates the QNX spawn() process-creation primitive and
// its P_WAIT/P_NOWAIT/P_OVERLAY convenience family on top of the host's
// fork/exec machinery.
//
// The inheritance descriptor's flags word is the sole driver of the child
// setup sequence; fields not gated by a set flag bit are never read. With
// the Exec flag the setup runs in the calling process and the program
// image replaces it, with no return on success. Otherwise a child is
// created: attributes that the kernel applies between fork and exec
// (process group, session) ride on SysProcAttr, and attributes a child
// inherits across exec (blocked signal mask, ignored dispositions, the
// stack resource limit, open descriptors) are staged in the parent for the
// duration of the start and restored afterwards. Descriptor remapping is
// applied last, so no earlier setup step can observe a remapped slot.
//
// Unlike the runtime being replaced, every setup step's failure is checked
// and aborts the spawn instead of leaving a partially configured child.
package spawn
