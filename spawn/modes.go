package spawn

import (
	"os/exec"

	"golang.org/x/sys/unix"
)

// Legacy spawn mode values.
const (
	PWait    = 0 // block until the child exits, return its exit status
	PNoWait  = 1 // return the child pid immediately
	POverlay = 2 // replace the calling process image
	PNoWaitO = 3 // like PNoWait, and the child never zombies
)

// Spawnve runs path with the given arguments and environment under one of
// the legacy modes. For PWait the return value is the child's exit status;
// for the no-wait modes it is the child pid. An unknown mode fails with
// EINVAL.
func Spawnve(mode int, path string, argv, envv []string) (int, error) {
	var inh Inheritance
	switch mode {
	case PWait, PNoWait:
	case POverlay:
		inh.Flags = Exec
	case PNoWaitO:
		inh.Flags = NoZombie
	default:
		return -1, unix.EINVAL
	}
	pid, err := Spawn(path, nil, &inh, argv, envv)
	if err != nil {
		return -1, err
	}
	if mode == PWait {
		var ws unix.WaitStatus
		if _, err := unix.Wait4(pid, &ws, 0, nil); err != nil {
			return -1, err
		}
		return ws.ExitStatus(), nil
	}
	return pid, nil
}

// Spawnv is Spawnve with the caller's environment.
func Spawnv(mode int, path string, argv []string) (int, error) {
	return Spawnve(mode, path, argv, nil)
}

// Spawnvp is Spawnv with a PATH search for the executable.
func Spawnvp(mode int, file string, argv []string) (int, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return -1, err
	}
	return Spawnve(mode, path, argv, nil)
}

// Spawnvpe is Spawnve with a PATH search for the executable.
func Spawnvpe(mode int, file string, argv, envv []string) (int, error) {
	path, err := exec.LookPath(file)
	if err != nil {
		return -1, err
	}
	return Spawnve(mode, path, argv, envv)
}

// ArgvBuilder collects an argument vector incrementally, replacing the
// count-then-allocate list walking of the original variadic entry points.
type ArgvBuilder struct {
	args []string
}

// Append adds one argument and returns the builder.
func (b *ArgvBuilder) Append(arg string) *ArgvBuilder {
	b.args = append(b.args, arg)
	return b
}

// Argv returns the collected vector.
func (b *ArgvBuilder) Argv() []string {
	return b.args
}

func buildArgv(args []string) []string {
	var b ArgvBuilder
	for _, a := range args {
		b.Append(a)
	}
	return b.Argv()
}

// Spawnl runs path with a fixed argument list, starting with argv[0].
func Spawnl(mode int, path string, args ...string) (int, error) {
	return Spawnve(mode, path, buildArgv(args), nil)
}

// Spawnlp is Spawnl with a PATH search for the executable.
func Spawnlp(mode int, file string, args ...string) (int, error) {
	return Spawnvp(mode, file, buildArgv(args))
}

// Spawnle is Spawnl with an explicit environment.
func Spawnle(mode int, path string, envv []string, args ...string) (int, error) {
	return Spawnve(mode, path, buildArgv(args), envv)
}

// Spawnlpe is Spawnle with a PATH search for the executable.
func Spawnlpe(mode int, file string, envv []string, args ...string) (int, error) {
	return Spawnvpe(mode, file, buildArgv(args), envv)
}
