package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvHome             = "TECHEXAM_HOME"
	EnvLogLevel         = "TECHEXAM_LOG_LEVEL"
	EnvLoginTimeout     = "TECHEXAM_LOGIN_TIMEOUT"
	EnvAuthDelay        = "TECHEXAM_AUTH_DELAY"
	EnvTracing          = "TECHEXAM_TRACING"
	EnvAcceptedUsername = "TECHEXAM_ACCEPTED_USERNAME"
	EnvAcceptedPassword = "TECHEXAM_ACCEPTED_PASSWORD"
	EnvServerType       = "SERVER_TYPE"
	EnvManualHost       = "MANUAL_HOST"
)

// Settings is the resolved runtime configuration
type Settings struct {
	Home             string
	LogLevel         string
	LoginTimeout     time.Duration
	AuthDelay        time.Duration
	TracingEnabled   bool
	AcceptedUsername string
	AcceptedPassword string
	Server           Server
}

// Defaults returns the settings used when nothing is configured
func Defaults() (Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("unable to determine user home directory: %w", err)
	}
	return Settings{
		Home:           filepath.Join(homeDir, ".techexam"),
		LogLevel:       "info",
		LoginTimeout:   10 * time.Second,
		AuthDelay:      600 * time.Millisecond,
		TracingEnabled: true,
		Server:         Server{Type: ServerTest, ManualHost: DefaultManualHost},
	}, nil
}

// Load applies defaults, then dotenvFile when it exists, then the process
// environment. Variables already set in the environment win over the file.
func Load(dotenvFile string) (Settings, error) {
	s, err := Defaults()
	if err != nil {
		return s, err
	}

	if dotenvFile != "" {
		if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("failed to load environment: %w", err)
		}
	}

	return s, applyEnv(&s, os.LookupEnv)
}

func applyEnv(s *Settings, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHome); ok && v != "" {
		s.Home = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = v
	}
	if v, ok := lookup(EnvLoginTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", EnvLoginTimeout, v)
		}
		s.LoginTimeout = d
	}
	if v, ok := lookup(EnvAuthDelay); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("%s: invalid duration %q", EnvAuthDelay, v)
		}
		s.AuthDelay = d
	}
	if v, ok := lookup(EnvTracing); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTracing, err)
		}
		s.TracingEnabled = b
	}
	if v, ok := lookup(EnvAcceptedUsername); ok {
		s.AcceptedUsername = v
	}
	if v, ok := lookup(EnvAcceptedPassword); ok {
		s.AcceptedPassword = v
	}
	if v, ok := lookup(EnvServerType); ok {
		s.Server.Type = ParseServerType(v)
	}
	if v, ok := lookup(EnvManualHost); ok && v != "" {
		s.Server.ManualHost = v
	}
	return nil
}

// LogFile is where the application log is written
func (s Settings) LogFile() string {
	return filepath.Join(s.Home, "techexam.log")
}

// TracesDir is where usage traces are written
func (s Settings) TracesDir() string {
	return filepath.Join(s.Home, "traces")
}
