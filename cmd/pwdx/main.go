//go:build linux

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ja7ad/procfind/pkg/match"
	"github.com/ja7ad/procfind/pkg/system/proc"
)

func main() {
	root := &cobra.Command{
		Use:           "pwdx [options] pid [...]",
		Short:         "Report the current working directory of a process",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
	}

	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "pwdx: %s\n", msg)
		}
		os.Exit(match.ExitCode(err))
	}
}

func run(args []string) error {
	failed := false
	for _, arg := range args {
		pid, err := strconv.Atoi(arg)
		if err != nil || pid <= 0 {
			fmt.Fprintf(os.Stderr, "pwdx: invalid process id: %s\n", arg)
			failed = true
			continue
		}
		p, err := proc.FromPid(pid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pwdx: %d: No such process\n", pid)
			failed = true
			continue
		}
		cwd, err := p.Cwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "pwdx: failed to read link for pid %d: %s\n", pid, err)
			failed = true
			continue
		}
		fmt.Printf("%d: %s\n", pid, cwd)
	}
	if failed {
		return &match.CodeError{Code: 1}
	}
	return nil
}
