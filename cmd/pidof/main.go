//go:build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ja7ad/procfind/pkg/match"
	"github.com/ja7ad/procfind/pkg/system/proc"
	"github.com/ja7ad/procfind/pkg/system/util"
)

type opts struct {
	singleShot  bool
	omit        string
	separator   string
	sepAlias    string
	quiet       bool
	lightweight bool
	withWorkers bool
	scripts     bool
	checkRoot   bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:           "pidof [options] [program [...]]",
		Short:         "Find the process ID of a running program",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the pidof bundled with Debian spells the separator -d
			if cmd.Flags().Changed("sep") && !cmd.Flags().Changed("separator") {
				o.separator = o.sepAlias
			}
			return run(o, args)
		},
	}

	root.Flags().BoolVarP(&o.singleShot, "single-shot", "s", false, "only return one PID")
	root.Flags().StringVarP(&o.omit, "omit-pid", "o", "", "omit results with a given PID")
	root.Flags().StringVarP(&o.separator, "separator", "S", " ", "use SEP as separator between PIDs")
	root.Flags().StringVarP(&o.sepAlias, "sep", "d", " ", "use SEP as separator between PIDs")
	_ = root.Flags().MarkHidden("sep")
	root.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "quiet mode, do not display output")
	root.Flags().BoolVarP(&o.lightweight, "lightweight", "t", false, "show thread ids instead of process ids")
	root.Flags().BoolVarP(&o.withWorkers, "with-workers", "w", false, "show kernel worker threads as well")
	root.Flags().BoolVarP(&o.scripts, "scripts", "x", false, "return PIDs of shells running scripts with a matching name")
	root.Flags().BoolVarP(&o.checkRoot, "check-root", "c", false, "only return PIDs with the same root directory")

	if err := root.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "pidof: %s\n", msg)
		}
		os.Exit(match.ExitCode(err))
	}
}

func run(o opts, programs []string) error {
	if len(programs) == 0 {
		return &match.CodeError{Code: 1}
	}

	var omit map[int]struct{}
	if o.omit != "" {
		pids, err := util.ParsePIDs(o.omit)
		if err != nil {
			return match.Usagef("%s", err)
		}
		omit = make(map[int]struct{}, len(pids))
		for _, pid := range pids {
			omit[pid] = struct{}{}
		}
	}

	// silently skip the root check when we are not privileged enough
	// to resolve other processes' root links
	checkRoot := o.checkRoot && os.Geteuid() == 0
	var ownRoot string
	if checkRoot {
		self, err := proc.Current()
		if err != nil {
			return err
		}
		if ownRoot, err = self.RootDir(); err != nil {
			return err
		}
	}

	procs, err := proc.Walk()
	if err != nil {
		return match.Failf("%s", err)
	}

	var collected []int
	for _, program := range programs {
		var pids []int
		for _, p := range procs {
			if _, skip := omit[p.Pid]; skip {
				continue
			}
			if !programMatches(p, program, o.withWorkers, o.scripts) {
				continue
			}
			if checkRoot {
				root, err := p.RootDir()
				if err != nil || root != ownRoot {
					continue
				}
			}
			if o.lightweight {
				pids = append(pids, p.ThreadIDs()...)
			} else {
				pids = append(pids, p.Pid)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(pids)))
		if o.singleShot && len(pids) > 1 {
			pids = pids[:1]
		}
		collected = append(collected, pids...)
	}

	if len(collected) == 0 {
		return &match.CodeError{Code: 1}
	}
	if !o.quiet {
		out := make([]string, 0, len(collected))
		for _, pid := range collected {
			out = append(out, strconv.Itoa(pid))
		}
		fmt.Println(strings.Join(out, o.separator))
	}
	return nil
}

// programMatches applies the pidof name rules: the basename of the
// first cmdline token must equal program; kernel threads only count
// with withWorkers and compare by status name; with scripts, an
// interpreter invocation like "/bin/sh ./run.sh" matches on the script
// basename as long as it extends the kernel-truncated name.
func programMatches(p *proc.Process, program string, withWorkers, scripts bool) bool {
	tokens := strings.Split(p.Cmdline, " ")
	path := tokens[0]

	if path == "" {
		if !withWorkers {
			return false
		}
		name, err := p.Name()
		return err == nil && name == program
	}

	if filepath.Base(path) == program {
		return true
	}

	if scripts && len(tokens) > 1 {
		name, err := p.Name()
		if err != nil {
			return false
		}
		script := filepath.Base(tokens[1])
		return script == program && strings.HasPrefix(script, name)
	}
	return false
}
