package match

import "github.com/spf13/pflag"

// BindFlags registers the selection flags shared by pgrep, pkill and
// pidwait on fs, writing into o. Tool-specific flags (output, echo,
// signal dispatch) stay with the tool.
func BindFlags(fs *pflag.FlagSet, o *Options) {
	fs.BoolVarP(&o.Full, "full", "f", false, "use full process name to match")
	fs.BoolVarP(&o.Exact, "exact", "x", false, "match exactly with the command name")
	fs.BoolVarP(&o.IgnoreCase, "ignore-case", "i", false, "match case insensitively")
	fs.BoolVarP(&o.Inverse, "inverse", "v", false, "negates the matching")
	fs.BoolVarP(&o.Newest, "newest", "n", false, "select most recently started")
	fs.BoolVarP(&o.Oldest, "oldest", "o", false, "select least recently started")
	fs.Uint64VarP(&o.Older, "older", "O", 0, "select where older than seconds")
	fs.StringVarP(&o.Parent, "parent", "P", "", "match only child processes of the given parent")
	fs.StringVarP(&o.Pgroup, "pgroup", "g", "", "match listed process group IDs")
	fs.StringVarP(&o.Session, "session", "s", "", "match session IDs")
	fs.StringVarP(&o.Group, "group", "G", "", "match real group IDs")
	fs.StringVarP(&o.UID, "uid", "U", "", "match by real IDs")
	fs.StringVarP(&o.EUID, "euid", "u", "", "match by effective IDs")
	fs.StringVarP(&o.Terminal, "terminal", "t", "", "match by controlling terminal")
	fs.StringVar(&o.Cgroup, "cgroup", "", "match by cgroup v2 names")
	fs.StringArrayVar(&o.Env, "env", nil, "match on environment variable")
	fs.StringVarP(&o.Pidfile, "pidfile", "F", "", "read PIDs from file")
	fs.BoolVarP(&o.Logpidfile, "logpidfile", "L", false, "fail if PID file is not locked")
	fs.BoolVarP(&o.IgnoreAncestors, "ignore-ancestors", "A", false, "exclude our ancestors from results")
	fs.BoolVarP(&o.RequireHandler, "require-handler", "H", false, "match only if signal handler is present")
	fs.IntVar(&o.NsPid, "ns", 0, "match the processes that belong to the same namespace as <pid>")
	fs.StringVar(&o.NsList, "nslist", "", "list which namespaces will be considered for the --ns option")
	fs.StringVarP(&o.Runstates, "runstates", "r", "", "match runstates [D,S,Z,...]")
	fs.StringVar(&o.Signal, "signal", "", "signal to send (either number or name)")
}

// Finish captures what only the parsed flag set knows: whether --older
// was given and the positional pattern arguments.
func (o *Options) Finish(fs *pflag.FlagSet, args []string) {
	o.OlderSet = fs.Changed("older")
	o.Patterns = args
}
