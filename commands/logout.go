package commands

import (
	"context"
	"fmt"
	"io"

	"techexam-cli/filesystem"
)

// LogoutCmd handles the `logout` command
type LogoutCmd struct {
	session Session
	out     io.Writer
}

// NewLogoutCmd creates a logout command
func NewLogoutCmd(s Session, out io.Writer) *LogoutCmd {
	return &LogoutCmd{session: s, out: out}
}

func (c *LogoutCmd) Synopsis() string {
	return "forget the saved session"
}

func (c *LogoutCmd) Execute(ctx context.Context, args []string) error {
	if err := newFlagSet("logout", c.out).Parse(args); err != nil {
		return err
	}
	c.session.Logout()
	fmt.Fprintln(c.out, "Signed out.")
	return nil
}

// ResetCmd handles the `reset` command: logout plus removal of local traces
type ResetCmd struct {
	session   Session
	files     *filesystem.Manager
	tracesDir string
	out       io.Writer
}

// NewResetCmd creates a reset command removing tracesDir
func NewResetCmd(s Session, files *filesystem.Manager, tracesDir string, out io.Writer) *ResetCmd {
	return &ResetCmd{session: s, files: files, tracesDir: tracesDir, out: out}
}

func (c *ResetCmd) Synopsis() string {
	return "forget the saved session and delete local traces"
}

func (c *ResetCmd) Execute(ctx context.Context, args []string) error {
	if err := newFlagSet("reset", c.out).Parse(args); err != nil {
		return err
	}
	c.session.Logout()
	if c.files.DirectoryExists(c.tracesDir) {
		if err := c.files.RemoveDirectory(c.tracesDir); err != nil {
			return fmt.Errorf("remove traces: %w", err)
		}
	}
	fmt.Fprintln(c.out, "Session cleared and local traces removed.")
	return nil
}
