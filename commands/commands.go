// Package commands implements the non-interactive subcommands of techexam.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"techexam-cli/session"
	"techexam-cli/store"
)

// ErrUnknownCommand is returned by Run for a name it does not know
var ErrUnknownCommand = errors.New("unknown command")

// Command is one subcommand
type Command interface {
	Execute(ctx context.Context, args []string) error
	Synopsis() string
}

// Session is the part of the session machine the commands drive
type Session interface {
	Evaluate() session.State
	Login(ctx context.Context, username, password string) error
	Logout() session.State
	Current() session.State
}

// Credentials reads the remembered session
type Credentials interface {
	Get() store.Credentials
}

// Registry maps subcommand names to commands
type Registry map[string]Command

// Run executes the subcommand named by args[0]
func (r Registry) Run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		r.Usage(out)
		return nil
	}
	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		r.Usage(out)
		return nil
	}
	cmd, ok := r[name]
	if !ok {
		r.Usage(out)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.Execute(ctx, args[1:])
}

// Usage lists the subcommands
func (r Registry) Usage(out io.Writer) {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Usage: techexam [command]")
	fmt.Fprintln(out, "\nWithout a command the interactive interface starts.")
	fmt.Fprintln(out, "\nCommands:")
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, r[name].Synopsis())
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
