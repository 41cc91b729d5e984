//go:build linux

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ja7ad/procfind/pkg/match"
	"github.com/ja7ad/procfind/pkg/system/proc"
)

const pollInterval = 50 * time.Millisecond

func main() {
	var (
		o     match.Options
		count bool
		echo  bool
	)

	root := &cobra.Command{
		Use:           "pidwait [options] <pattern>",
		Short:         "Wait for processes based on name and other attributes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Program = "pidwait"
			o.Finish(cmd.Flags(), args)
			return run(o, count, echo)
		},
	}

	match.BindFlags(root.Flags(), &o)
	root.Flags().BoolVarP(&count, "count", "c", false, "count of matching processes")
	root.Flags().BoolVarP(&echo, "echo", "e", false, "display PIDs before waiting")

	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "pidwait: %s\n", msg)
		}
		os.Exit(match.ExitCode(err))
	}
}

func run(o match.Options, count, echo bool) error {
	s, err := match.NewSettings(o)
	if err != nil {
		return err
	}
	procs, err := s.Find()
	if err != nil {
		return err
	}

	if count {
		fmt.Println(len(procs))
	}
	if echo {
		for _, p := range procs {
			name, err := p.Name()
			if err != nil {
				name = "?"
			}
			fmt.Printf("waiting for %s (pid %d)\n", name, p.Pid)
		}
	}

	wait(procs)

	if len(procs) == 0 && !count {
		return &match.CodeError{Code: 1}
	}
	return nil
}

// wait polls until every matched pid has left the process table.
func wait(procs []*proc.Process) {
	remaining := make(map[int]struct{}, len(procs))
	for _, p := range procs {
		remaining[p.Pid] = struct{}{}
	}
	for len(remaining) > 0 {
		for pid := range remaining {
			if !proc.Exists(pid) {
				slog.Debug("process exited", "pid", pid)
				delete(remaining, pid)
			}
		}
		if len(remaining) == 0 {
			return
		}
		time.Sleep(pollInterval)
	}
}
