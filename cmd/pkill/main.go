//go:build linux

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ja7ad/procfind/pkg/match"
	"github.com/ja7ad/procfind/pkg/signals"
)

func main() {
	var (
		o     match.Options
		count bool
		echo  bool
	)

	args, obsoleteSignal := extractObsoleteSignal(os.Args[1:])

	root := &cobra.Command{
		Use:           "pkill [options] <pattern>",
		Short:         "Signal processes based on name and other attributes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Program = "pkill"
			o.Finish(cmd.Flags(), args)
			if obsoleteSignal != "" && !cmd.Flags().Changed("signal") {
				o.Signal = obsoleteSignal
			}
			return run(o, count, echo)
		},
	}

	match.BindFlags(root.Flags(), &o)
	root.Flags().BoolVarP(&count, "count", "c", false, "count of matching processes")
	root.Flags().BoolVarP(&echo, "echo", "e", false, "display what is killed")
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "pkill: %s\n", msg)
		}
		os.Exit(match.ExitCode(err))
	}
}

// extractObsoleteSignal strips a leading "-SIGNAME" or "-N" argument,
// the historic way of naming the signal to send.
func extractObsoleteSignal(args []string) ([]string, string) {
	if len(args) == 0 {
		return args, ""
	}
	candidate := strings.TrimPrefix(args[0], "-")
	if candidate == args[0] {
		return args, ""
	}
	if _, err := signals.ByNameOrValue(candidate); err != nil {
		return args, ""
	}
	return args[1:], candidate
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

	failed := false
	for _, p := range procs {
		if err := signals.Send(p.Pid, s.Signal()); err != nil {
			fmt.Fprintf(os.Stderr, "pkill: killing pid %d failed: %s\n", p.Pid, err)
			failed = true
			continue
		}
		if echo {
			name, _, _ := strings.Cut(p.Cmdline, " ")
			fmt.Printf("%s killed (pid %d)\n", name, p.Pid)
		}
	}

	if count {
		fmt.Println(len(procs))
		return nil
	}
	if len(procs) == 0 || failed {
		return &match.CodeError{Code: 1}
	}
	return nil
}
