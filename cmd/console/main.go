package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/credstore"
	"github.com/surveydesk/go-console/internal/config"
	"github.com/surveydesk/go-console/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	c := config.New()

	logger := newLogger(c.GetLogLevel())

	if len(args) == 0 {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	pollInterval, err := time.ParseDuration(c.GetPollInterval())
	if err != nil {
		pollInterval = session.DefaultPollInterval
	}

	if err := os.MkdirAll(c.GetDataFolder(), 0o700); err != nil {
		return fmt.Errorf("create data folder: %w", err)
	}
	store, err := credstore.OpenSQLite(filepath.Join(c.GetDataFolder(), "credentials.db"))
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer store.Close()

	apiClient := api.New(c.GetAPIBaseURL())

	manager, err := session.NewManager(apiClient, store,
		session.WithPollInterval(pollInterval),
		session.WithNotifier(stderrNotifier{}),
		session.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer manager.Close()

	ctx := context.Background()
	manager.Initialize(ctx)

	return dispatch(ctx, manager, apiClient, args)
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func usage() {
	fmt.Println("Usage: console <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login <email>   Authenticate and store the session")
	fmt.Println("  logout          Clear the stored session")
	fmt.Println("  status          Show session state")
	fmt.Println("  whoami          Show the logged-in user")
	fmt.Println("  tasks           List assigned tasks")
	fmt.Println("  records         List survey records")
}

// stderrNotifier is the console's stand-in for the web shell's snackbar.
type stderrNotifier struct{}

func (stderrNotifier) Info(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

func (stderrNotifier) Error(message string) {
	fmt.Fprintf(os.Stderr, "error: %s\n", message)
}
