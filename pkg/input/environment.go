package input

import (
	"os"
	"strings"
)

// Environment is a snapshot of process environment variables.
// It is captured once per resolution and never re-read.
type Environment map[string]string

// SnapshotEnvironment builds an Environment from KEY=VALUE pairs as returned
// by os.Environ. Entries without a separator are skipped.
func SnapshotEnvironment(pairs []string) Environment {
	env := make(Environment, len(pairs))
	for _, e := range pairs {
		key, value, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// ProcessEnvironment snapshots the current process environment.
func ProcessEnvironment() Environment {
	return SnapshotEnvironment(os.Environ())
}

// Lookup returns the value for key and whether it is present.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Merge returns a copy of e with entries from extra added for keys e does not
// already hold.
func (e Environment) Merge(extra map[string]string) Environment {
	out := make(Environment, len(e)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range e {
		out[k] = v
	}
	return out
}
