package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"techexam-cli/config"
	"techexam-cli/filesystem"

	"github.com/olekukonko/tablewriter"
)

// StatusCmd handles the `status` command
type StatusCmd struct {
	session     Session
	credentials Credentials
	settings    config.Settings
	files       *filesystem.Manager
	out         io.Writer
}

// NewStatusCmd creates a status command
func NewStatusCmd(s Session, creds Credentials, settings config.Settings, files *filesystem.Manager, out io.Writer) *StatusCmd {
	return &StatusCmd{session: s, credentials: creds, settings: settings, files: files, out: out}
}

func (c *StatusCmd) Synopsis() string {
	return "show the saved session, server and data directory"
}

func (c *StatusCmd) Execute(ctx context.Context, args []string) error {
	if err := newFlagSet("status", c.out).Parse(args); err != nil {
		return err
	}

	state := c.session.Evaluate()
	user := c.credentials.Get().UsernameOrEmpty()
	if user == "" {
		user = "-"
	}
	server := c.settings.Server.URL()
	if server == "" {
		server = "(not configured)"
	}

	traces := "-"
	if c.files.DirectoryExists(c.settings.TracesDir()) {
		n, err := c.files.CountFiles(c.settings.TracesDir())
		if err != nil {
			return fmt.Errorf("count traces: %w", err)
		}
		traces = strconv.Itoa(n)
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Field", "Value")
	rows := [][]string{
		{"Session", state.String()},
		{"User", user},
		{"Server type", string(c.settings.Server.Type)},
		{"Server", server},
		{"Data dir", c.settings.Home},
		{"Trace files", traces},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return fmt.Errorf("render status: %w", err)
		}
	}
	return table.Render()
}
