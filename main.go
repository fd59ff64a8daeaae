package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"techexam-cli/auth"
	"techexam-cli/commands"
	"techexam-cli/config"
	"techexam-cli/filesystem"
	"techexam-cli/logging"
	"techexam-cli/session"
	"techexam-cli/store"
	"techexam-cli/tracing"
	"techexam-cli/tui"
	"techexam-cli/tui/controller"
	"techexam-cli/tui/theme"
)

var version = "0.1.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, commands.ErrLoginFailed) {
			fmt.Fprintln(os.Stderr, "techexam:", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings, err := config.Load(".env")
	if err != nil {
		return err
	}

	files := filesystem.NewManager(settings.Home)
	if err := files.CreateDirectory(settings.Home); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: settings.LogLevel, File: settings.LogFile()})
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.WithField("version", version)

	traceConfig := tracing.DefaultConfig(settings.Home)
	// reset deletes the traces directory, so it must not write a new batch on exit
	traceConfig.Enabled = settings.TracingEnabled && !(len(args) > 0 && args[0] == "reset")
	traces, err := tracing.NewManager(traceConfig, version)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
		traces = tracing.NewDisabledManager()
	}
	defer traces.Close()

	source := "tui"
	if len(args) > 0 {
		source = "cli"
	}
	integration := tracing.NewTUIIntegration(traces, source)

	scheduler := store.NewSerialScheduler()
	defer scheduler.Close()
	credentials := store.New(config.NewFileBackend(settings.Home), scheduler,
		store.WithLogger(logging.Component(log, "store")))

	identity := auth.DefaultIdentity
	if settings.AcceptedUsername != "" && settings.AcceptedPassword != "" {
		identity = auth.Identity{Username: settings.AcceptedUsername, Password: settings.AcceptedPassword}
	}
	provider, err := auth.NewStaticProvider(identity, settings.AuthDelay)
	if err != nil {
		return err
	}

	machine := session.NewMachine(credentials, provider,
		session.WithLogger(logging.Component(log, "session")),
		session.WithTransitionHook(integration.SessionHook()),
	)
	authService := auth.NewAuthService(machine, auth.WithLimiter(auth.NewLoginLimiter()))

	if len(args) > 0 {
		registry := commands.Registry{
			"status": commands.NewStatusCmd(machine, credentials, settings, files, os.Stdout),
			"login":  commands.NewLoginCmd(authService, integration, settings.LoginTimeout, os.Stdin, os.Stdout),
			"logout": commands.NewLogoutCmd(machine, os.Stdout),
			"reset":  commands.NewResetCmd(machine, files, settings.TracesDir(), os.Stdout),
		}
		return registry.Run(ctx, args, os.Stdout)
	}

	ctrl := controller.New(controller.Dependencies{
		Session:      machine,
		Store:        credentials,
		Auth:         authService,
		Server:       settings.Server,
		LoginTimeout: settings.LoginTimeout,
		Tracer:       integration,
		Theme:        theme.NewManager(),
		Log:          logging.Component(log, "tui"),
		Version:      version,
	})
	return tui.Run(ctx, ctrl)
}
