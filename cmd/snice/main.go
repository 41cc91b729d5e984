//go:build linux

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/ja7ad/procfind/pkg/match"
	"github.com/ja7ad/procfind/pkg/priority"
	"github.com/ja7ad/procfind/pkg/signals"
	"github.com/ja7ad/procfind/pkg/system/proc"
	"github.com/ja7ad/procfind/pkg/system/util"
)

type opts struct {
	list        bool
	table       bool
	noAction    bool
	verbose     bool
	warnings    bool
	interactive bool

	commands []string
	pids     []string
	ttys     []string
	users    []string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:           "snice [new priority] [options] expression",
		Short:         "Change the scheduling priority of running processes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, args)
		},
	}

	root.Flags().BoolVarP(&o.list, "list", "l", false, "list all signal names")
	root.Flags().BoolVarP(&o.table, "table", "L", false, "list all signal names in a nice table")
	root.Flags().BoolVarP(&o.noAction, "no-action", "n", false, "do not actually renice processes; just print what would happen")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "explain what is being done")
	root.Flags().BoolVarP(&o.warnings, "warnings", "w", false, "enable warnings (not implemented)")
	root.Flags().BoolVarP(&o.interactive, "interactive", "i", false, "ask before renicing each process")
	root.Flags().StringArrayVarP(&o.commands, "command", "c", nil, "expression is a command name")
	root.Flags().StringArrayVarP(&o.pids, "pid", "p", nil, "expression is a process id number")
	root.Flags().StringArrayVarP(&o.ttys, "tty", "t", nil, "expression is a terminal")
	root.Flags().StringArrayVarP(&o.users, "user", "u", nil, "expression is a username")

	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "snice: %s\n", msg)
		}
		os.Exit(match.ExitCode(err))
	}
}

func run(o opts, args []string) error {
	if o.list {
		fmt.Print(signals.FormatList())
		return nil
	}
	if o.table {
		fmt.Print(signals.FormatTable())
		return nil
	}

	prio := priority.Default
	if len(args) > 1 {
		return match.Usagef("only one priority expression can be provided")
	}
	if len(args) == 1 {
		var err error
		if prio, err = priority.Parse(args[0]); err != nil {
			return match.Usagef("%s", err)
		}
	}

	pids, err := selectPids(o)
	if err != nil {
		return err
	}
	if pids == nil {
		return match.Usagef("no process selection criteria\nTry `snice --help' for more information.")
	}

	failed := false
	for _, pid := range pids {
		if o.interactive && !askUser(pid) {
			continue
		}
		if err := renice(pid, prio, o); err != nil {
			fmt.Fprintf(os.Stderr, "snice: pid %d: %s\n", pid, err)
			failed = true
		}
	}
	if failed || len(pids) == 0 {
		return &match.CodeError{Code: 1}
	}
	return nil
}

// selectPids resolves every target expression to pids. Returns nil when
// no expression was given at all, as opposed to expressions that
// matched nothing.
func selectPids(o opts) ([]int, error) {
	if len(o.commands) == 0 && len(o.pids) == 0 && len(o.ttys) == 0 && len(o.users) == 0 {
		return nil, nil
	}

	pids := make([]int, 0)
	seen := make(map[int]struct{})
	add := func(pid int) {
		if _, dup := seen[pid]; dup {
			return
		}
		seen[pid] = struct{}{}
		pids = append(pids, pid)
	}

	for _, arg := range o.pids {
		parsed, err := util.ParsePIDs(arg)
		if err != nil {
			return nil, match.Usagef("%s", err)
		}
		for _, pid := range parsed {
			add(pid)
		}
	}

	if len(o.commands) == 0 && len(o.ttys) == 0 && len(o.users) == 0 {
		return pids, nil
	}

	procs, err := proc.Walk()
	if err != nil {
		return nil, match.Failf("%s", err)
	}

	for _, cmd := range o.commands {
		for _, p := range procs {
			if name, err := p.Name(); err == nil && name == cmd {
				add(p.Pid)
			}
		}
	}
	for _, arg := range o.ttys {
		tty, err := proc.ParseTeletype(arg)
		if err != nil {
			continue
		}
		for _, p := range procs {
			if p.TTY() == tty {
				add(p.Pid)
			}
		}
	}
	for _, arg := range o.users {
		uid, err := util.LookupUserID(arg)
		if err != nil {
			return nil, match.Failf("%s", err)
		}
		for _, p := range procs {
			if got, err := p.UID(); err == nil && uint64(got) == uid {
				add(p.Pid)
			}
		}
	}
	return pids, nil
}

// renice reads the current niceness, applies the expression, and writes
// the result back. The raw getpriority value is kernel-biased by 20.
func renice(pid int, prio priority.Priority, o opts) error {
	raw, err := unix.Getpriority(unix.PRIO_PROCESS, pid)
	if err != nil {
		return err
	}
	current := 20 - raw
	next := prio.Apply(current)

	if o.verbose || o.noAction {
		fmt.Printf("%d: nice %d -> %d\n", pid, current, next)
	}
	if o.noAction {
		return nil
	}
	return unix.Setpriority(unix.PRIO_PROCESS, pid, next)
}

func askUser(pid int) bool {
	fmt.Printf("renice pid %d? [y/N] ", pid)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
