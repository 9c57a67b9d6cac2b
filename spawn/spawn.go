package spawn

import (
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/qolproject/qnxcompat/abi"
)

// Spawn runs path as a new process configured by the inheritance
// descriptor, returning the child's pid. With the Exec flag set the setup
// sequence runs in the calling process and the image replaces it: there is
// no return on success, and the caller must not proceed past a returned
// error, since the process may already be partially reconfigured.
//
// fdMap maps child descriptor slots to parent descriptors (see FDMap). A
// nil envv inherits the caller's environment.
func Spawn(path string, fdMap FDMap, inherit *Inheritance, argv, envv []string) (int, error) {
	if inherit == nil {
		inherit = &Inheritance{}
	}
	if inherit.Flags&SearchPath != 0 {
		found, err := exec.LookPath(path)
		if err != nil {
			return -1, err
		}
		path = found
	}
	Logger().Debug("spawn",
		zap.String("path", path),
		zap.Uint32("flags", inherit.Flags),
		zap.Ints("fdmap", fdMap),
	)
	if inherit.Flags&Exec != 0 {
		return -1, overlay(path, fdMap, inherit, argv, envv)
	}
	return startChild(path, fdMap, inherit, argv, envv)
}

// overlay runs the setup sequence in the calling process and replaces its
// image. The step order is fixed: descriptor remapping comes last so that
// no earlier step can observe a remapped slot.
func overlay(path string, fdMap FDMap, inh *Inheritance, argv, envv []string) error {
	// The pin matters until Exec; the unlock only ever runs on the error
	// returns, since success never comes back.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if inh.Flags&SetGroup != 0 {
		if err := unix.Setpgid(0, inh.ProcessGroup); err != nil {
			return err
		}
	}
	if inh.Flags&SetSigMask != 0 {
		var set unix.Sigset_t
		inh.SigMask.ToHost(&set)
		if err := unix.PthreadSigmask(unix.SIG_SETMASK, &set, nil); err != nil {
			return err
		}
	}
	if inh.Flags&SetSID != 0 {
		if _, err := unix.Setsid(); err != nil {
			return err
		}
	}
	if inh.Flags&SetStackMax != 0 {
		lim := unix.Rlimit{Cur: uint64(inh.StackMax), Max: unix.RLIM_INFINITY}
		if err := unix.Setrlimit(unix.RLIMIT_STACK, &lim); err != nil {
			return err
		}
	}
	if inh.Flags&SetSigDef != 0 {
		if err := setDispositions(&inh.SigDefault, abi.SigDfl); err != nil {
			return err
		}
	}
	if inh.Flags&SetSigIgn != 0 {
		if err := setDispositions(&inh.SigIgnore, abi.SigIgn); err != nil {
			return err
		}
	}
	for slot, src := range fdMap {
		if src == slot {
			continue
		}
		if err := unix.Dup2(src, slot); err != nil {
			return err
		}
		if err := unix.Close(src); err != nil {
			return err
		}
	}
	if envv == nil {
		envv = os.Environ()
	}
	return unix.Exec(path, argv, envv)
}

func setDispositions(set *abi.SigSet, handler uint64) error {
	for sig := 1; sig <= abi.SigMax; sig++ {
		if !set.Member(sig) {
			continue
		}
		if err := abi.RtSigaction(sig, &abi.Sigaction{Handler: handler}, nil); err != nil {
			if err == unix.EINVAL {
				continue
			}
			return err
		}
	}
	return nil
}

// startChild creates the child. Process group and session ride on
// SysProcAttr and are applied by the kernel between fork and exec; signal
// mask, dispositions and the stack limit are inherited across exec, so
// they are staged in the parent around the start and restored afterwards.
func startChild(path string, fdMap FDMap, inh *Inheritance, argv, envv []string) (int, error) {
	files, closeFiles, err := childFiles(fdMap)
	if err != nil {
		return -1, err
	}
	defer closeFiles()

	attr := &os.ProcAttr{
		Env:   envv,
		Files: files,
		Sys:   &syscall.SysProcAttr{},
	}
	if inh.Flags&SetGroup != 0 {
		attr.Sys.Setpgid = true
		attr.Sys.Pgid = inh.ProcessGroup
	}
	if inh.Flags&SetSID != 0 {
		attr.Sys.Setsid = true
	}

	restore, err := stageInheritable(inh)
	if err != nil {
		return -1, err
	}
	defer restore()

	proc, err := os.StartProcess(path, argv, attr)
	if err != nil {
		return -1, err
	}
	pid := proc.Pid
	if inh.Flags&NoZombie != 0 {
		// Reap in the background so the child never zombies.
		go func() { _, _ = proc.Wait() }()
	} else {
		_ = proc.Release()
	}
	return pid, nil
}

// childFiles builds the descriptor table for the child. Sources are
// duplicated so a caller dropping its own descriptors mid-start cannot
// race the fork; the duplicates are closed once the start completes.
func childFiles(fdMap FDMap) ([]*os.File, func(), error) {
	if len(fdMap) == 0 {
		return []*os.File{os.Stdin, os.Stdout, os.Stderr}, func() {}, nil
	}
	files := make([]*os.File, len(fdMap))
	closeAll := func() {
		for _, f := range files {
			if f != nil {
				_ = f.Close()
			}
		}
	}
	for slot, src := range fdMap {
		dup, err := unix.FcntlInt(uintptr(src), unix.F_DUPFD_CLOEXEC, 0)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files[slot] = os.NewFile(uintptr(dup), "")
	}
	return files, closeAll, nil
}

// stageInheritable applies the descriptor's exec-surviving attributes to
// the parent and returns a function undoing them in reverse order.
func stageInheritable(inh *Inheritance) (restore func(), err error) {
	var undo []func()
	restore = func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	if inh.Flags&SetSigMask != 0 {
		// The fork happens on this thread; pin it so the staged mask is
		// the one the child inherits.
		runtime.LockOSThread()
		undo = append(undo, runtime.UnlockOSThread)

		var set, old unix.Sigset_t
		inh.SigMask.ToHost(&set)
		if err := unix.PthreadSigmask(unix.SIG_SETMASK, &set, &old); err != nil {
			restore()
			return nil, err
		}
		undo = append(undo, func() {
			_ = unix.PthreadSigmask(unix.SIG_SETMASK, &old, nil)
		})
	}

	if inh.Flags&SetStackMax != 0 {
		var old unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_STACK, &old); err != nil {
			restore()
			return nil, err
		}
		lim := unix.Rlimit{Cur: uint64(inh.StackMax), Max: old.Max}
		if err := unix.Setrlimit(unix.RLIMIT_STACK, &lim); err != nil {
			restore()
			return nil, err
		}
		undo = append(undo, func() {
			_ = unix.Setrlimit(unix.RLIMIT_STACK, &old)
		})
	}

	if inh.Flags&SetSigDef != 0 {
		if err := stageDispositions(&inh.SigDefault, abi.SigDfl, &undo); err != nil {
			restore()
			return nil, err
		}
	}
	if inh.Flags&SetSigIgn != 0 {
		if err := stageDispositions(&inh.SigIgnore, abi.SigIgn, &undo); err != nil {
			restore()
			return nil, err
		}
	}

	return restore, nil
}

// stageDispositions sets every signal in set to the given sentinel
// handler, recording the previous dispositions for restore. Exec resets
// handled signals to their defaults anyway; what this stages is the
// ignored-versus-default state, which is exactly what survives into the
// child.
func stageDispositions(set *abi.SigSet, handler uint64, undo *[]func()) error {
	for sig := 1; sig <= abi.SigMax; sig++ {
		if !set.Member(sig) {
			continue
		}
		old, err := abi.SaveDisposition(sig)
		if err != nil {
			return err
		}
		if err := abi.RtSigaction(sig, &abi.Sigaction{Handler: handler}, nil); err != nil {
			// SIGKILL and SIGSTOP cannot be reconfigured; the original
			// loop skipped over those failures implicitly.
			if err == unix.EINVAL {
				continue
			}
			return err
		}
		*undo = append(*undo, func() {
			_ = old.Restore()
		})
	}
	return nil
}
