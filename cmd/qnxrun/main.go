package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	seccomp "github.com/elastic/go-seccomp-bpf"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/qolproject/qnxcompat/diag"
	"github.com/qolproject/qnxcompat/spawn"
)

func main() {
	app := &cli.App{
		Name:      "qnxrun",
		Usage:     "launch a repointed QNX binary through the compatibility runtime",
		ArgsUsage: "PROGRAM [ARG...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "spawn mode: wait, nowait, nowaito or overlay",
				Value: "wait",
			},
			&cli.BoolFlag{
				Name:  "setsid",
				Usage: "make the program a new session leader",
			},
			&cli.IntFlag{
				Name:  "pgroup",
				Usage: "join the given process group (0 for a new one)",
				Value: -1,
			},
			&cli.StringSliceFlag{
				Name:  "fd",
				Usage: "remap a descriptor, CHILD=PARENT (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "env",
				Usage: "environment entry KEY=VALUE (repeatable, replaces the inherited environment)",
			},
			&cli.BoolFlag{
				Name:  "search-path",
				Usage: "resolve PROGRAM against PATH",
			},
			&cli.StringSliceFlag{
				Name:  "deny",
				Usage: "deny a syscall by name with seccomp before exec (repeatable, overlay mode only)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log the spawn configuration",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "qnxrun: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no program given")
	}
	argv := c.Args().Slice()
	path := argv[0]

	mode, err := parseMode(c.String("mode"))
	if err != nil {
		return err
	}

	if c.Bool("verbose") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		spawn.SetLogger(logger)
		diag.SetLogger(logger)
	}

	inh := spawn.Inheritance{}
	switch mode {
	case spawn.POverlay:
		inh.Flags |= spawn.Exec
	case spawn.PNoWaitO:
		inh.Flags |= spawn.NoZombie
	}
	if c.Bool("setsid") {
		inh.Flags |= spawn.SetSID
	}
	if pg := c.Int("pgroup"); pg >= 0 {
		inh.Flags |= spawn.SetGroup
		inh.ProcessGroup = pg
	}
	if c.Bool("search-path") {
		inh.Flags |= spawn.SearchPath
	}

	fdMap, err := parseFDMap(c.StringSlice("fd"))
	if err != nil {
		return err
	}

	var envv []string
	if env := c.StringSlice("env"); len(env) > 0 {
		envv = env
	}

	if deny := c.StringSlice("deny"); len(deny) > 0 {
		if mode != spawn.POverlay {
			return fmt.Errorf("--deny requires --mode overlay: the filter would confine the launcher too")
		}
		if err := loadDenyFilter(deny); err != nil {
			return fmt.Errorf("seccomp: %w", err)
		}
	}

	pid, err := spawn.Spawn(path, fdMap, &inh, argv, envv)
	if err != nil {
		return err
	}
	if mode == spawn.PWait {
		status, err := waitFor(pid)
		if err != nil {
			return err
		}
		os.Exit(status)
	}
	fmt.Println(pid)
	return nil
}

func waitFor(pid int) (int, error) {
	var ws unix.WaitStatus
	if _, err := unix.Wait4(pid, &ws, 0, nil); err != nil {
		return -1, err
	}
	return ws.ExitStatus(), nil
}

func parseMode(s string) (int, error) {
	switch s {
	case "wait":
		return spawn.PWait, nil
	case "nowait":
		return spawn.PNoWait, nil
	case "nowaito":
		return spawn.PNoWaitO, nil
	case "overlay":
		return spawn.POverlay, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// parseFDMap turns CHILD=PARENT pairs into a spawn.FDMap. Slots not named
// by any pair keep their identity mapping.
func parseFDMap(pairs []string) (spawn.FDMap, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fdMap := spawn.FDMap{0, 1, 2}
	for _, p := range pairs {
		childStr, parentStr, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("bad fd mapping %q, want CHILD=PARENT", p)
		}
		child, err := strconv.Atoi(childStr)
		if err != nil || child < 0 {
			return nil, fmt.Errorf("bad child descriptor in %q", p)
		}
		parent, err := strconv.Atoi(parentStr)
		if err != nil || parent < 0 {
			return nil, fmt.Errorf("bad parent descriptor in %q", p)
		}
		for len(fdMap) <= child {
			fdMap = append(fdMap, len(fdMap))
		}
		fdMap[child] = parent
	}
	return fdMap, nil
}

// loadDenyFilter installs a seccomp filter rejecting the named syscalls
// with EPERM. The filter survives exec and confines the QNX program image.
func loadDenyFilter(names []string) error {
	filter := seccomp.Filter{
		NoNewPrivs: true,
		Flag:       seccomp.FilterFlagTSync,
		Policy: seccomp.Policy{
			DefaultAction: seccomp.ActionAllow,
			Syscalls: []seccomp.SyscallGroup{{
				Action: seccomp.ActionErrno,
				Names:  names,
			}},
		},
	}
	return seccomp.LoadFilter(filter)
}
