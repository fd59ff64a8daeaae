package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"techexam-cli/auth"
	"techexam-cli/tracing"

	"golang.org/x/term"
)

// ErrLoginFailed is returned when the attempt did not sign in
var ErrLoginFailed = errors.New("login failed")

// Authenticator runs a login attempt
type Authenticator interface {
	AttemptLogin(ctx context.Context, username, password string) auth.LoginResult
}

// LoginCmd handles the `login` command
type LoginCmd struct {
	Username string
	Password string

	auth    Authenticator
	tracer  *tracing.TUIIntegration
	timeout time.Duration
	in      io.Reader
	out     io.Writer

	// readPassword reads without echo when stdin is a terminal
	readPassword func() (string, error)
}

// NewLoginCmd creates a login command reading prompts from in
func NewLoginCmd(a Authenticator, tracer *tracing.TUIIntegration, timeout time.Duration, in io.Reader, out io.Writer) *LoginCmd {
	if tracer == nil {
		tracer = tracing.NewTUIIntegration(nil, "cli")
	}
	c := &LoginCmd{auth: a, tracer: tracer, timeout: timeout, in: in, out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.readPassword = func() (string, error) {
			pw, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			return string(pw), err
		}
	}
	return c
}

func (c *LoginCmd) Synopsis() string {
	return "sign in (-u username, -p password; prompts for missing values)"
}

func (c *LoginCmd) Execute(ctx context.Context, args []string) error {
	fs := newFlagSet("login", c.out)
	fs.StringVar(&c.Username, "u", c.Username, "username (email)")
	fs.StringVar(&c.Password, "p", c.Password, "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(c.in)
	if c.Username == "" {
		username, err := prompt(reader, c.out, "Enter username: ")
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		c.Username = username
	}
	if c.Password == "" {
		var password string
		var err error
		if c.readPassword != nil {
			fmt.Fprint(c.out, "Enter password: ")
			password, err = c.readPassword()
		} else {
			password, err = prompt(reader, c.out, "Enter password: ")
		}
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		c.Password = password
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tracker := c.tracer.StartLogin()
	result := c.auth.AttemptLogin(ctx, c.Username, c.Password)
	_ = tracker.Complete(result)

	if !result.Success {
		fmt.Fprintln(c.out, result.Error)
		return fmt.Errorf("%w: %s", ErrLoginFailed, result.Error)
	}
	fmt.Fprintf(c.out, "Signed in as %s.\n", c.Username)
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
