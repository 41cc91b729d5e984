//go:build linux

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ja7ad/procfind/pkg/match"
)

func main() {
	var (
		o         match.Options
		count     bool
		listName  bool
		listFull  bool
		delimiter string
	)

	root := &cobra.Command{
		Use:           "pgrep [options] <pattern>",
		Short:         "Look up processes based on name and other attributes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Program = "pgrep"
			o.Finish(cmd.Flags(), args)
			return run(o, count, listName, listFull, delimiter)
		},
	}

	match.BindFlags(root.Flags(), &o)
	root.Flags().BoolVarP(&o.Threads, "lightweight", "w", false, "list all TID")
	root.Flags().BoolVarP(&count, "count", "c", false, "count of matching processes")
	root.Flags().BoolVarP(&listName, "list-name", "l", false, "list PID and process name")
	root.Flags().BoolVarP(&listFull, "list-full", "a", false, "list PID and full command line")
	root.Flags().StringVarP(&delimiter, "delimiter", "d", "\n", "specify output delimiter")

	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "pgrep: %s\n", msg)
		}
		os.Exit(match.ExitCode(err))
	}
}

func run(o match.Options, count, listName, listFull bool, delimiter string) error {
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
		return nil
	}

	formatted := make([]string, 0, len(procs))
	for _, p := range procs {
		switch {
		case listFull && p.Cmdline == "":
			// kernel threads carry no cmdline; show the bracketed name
			name, err := p.Name()
			if err != nil {
				name = "?"
			}
			formatted = append(formatted, fmt.Sprintf("%d [%s]", p.Pid, name))
		case listFull:
			formatted = append(formatted, fmt.Sprintf("%d %s", p.Pid, p.Cmdline))
		case listName:
			name, err := p.Name()
			if err != nil {
				name = "?"
			}
			formatted = append(formatted, fmt.Sprintf("%d %s", p.Pid, name))
		default:
			formatted = append(formatted, fmt.Sprintf("%d", p.Pid))
		}
	}
	if len(formatted) > 0 {
		fmt.Println(strings.Join(formatted, delimiter))
	}

	if len(procs) == 0 {
		return &match.CodeError{Code: 1}
	}
	return nil
}
