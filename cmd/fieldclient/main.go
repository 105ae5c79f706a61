// Command fieldclient is the terminal front end for the Wildlife Tracker
// API: log in, record observations, manage the species catalog, inspect the
// map data, and pull exports.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/WildTrack-Africa/field_client/internal/apiclient"
	"github.com/WildTrack-Africa/field_client/internal/authsession"
	"github.com/WildTrack-Africa/field_client/internal/cli"
	"github.com/WildTrack-Africa/field_client/internal/config"
	"github.com/WildTrack-Africa/field_client/internal/logging"
	"github.com/WildTrack-Africa/field_client/internal/mapview"
	"github.com/WildTrack-Africa/field_client/internal/services"
	"github.com/WildTrack-Africa/field_client/internal/shell"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: fieldclient <command> [flags]

Commands:
  login       authenticate and store the session token
  logout      clear the stored session token
  whoami      show the current user profile
  routes      show the views available for the current session
  dashboard   show aggregate statistics
  species     manage the species catalog (list|create|update|delete|import|stats)
  observe     record a field observation
  map         list map markers with filters
  export      download observation or species exports
`)
	os.Exit(2)
}

// app bundles everything the subcommands need.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	session *authsession.Session
	shell   *shell.Shell

	species      *services.Species
	observations *services.Observations
	stats        *services.Stats
	export       *services.Export

	style *mapview.Style
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogJSON)

	store := authsession.NewFileStore(cfg.TokenPath)
	api, err := apiclient.New(apiclient.Config{
		BaseURL:           cfg.BaseURL,
		HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout},
		Token:             authsession.TokenSource(store),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		log.Fatalf("build api client: %v", err)
	}

	session := authsession.New(store, api, logger)
	style, err := mapview.LoadStyle(cfg.StyleFile)
	if err != nil {
		log.Fatalf("load marker styles: %v", err)
	}

	a := &app{
		cfg:          cfg,
		logger:       logger,
		session:      session,
		shell:        shell.New(session, logger),
		species:      services.NewSpecies(api),
		observations: services.NewObservations(api),
		stats:        services.NewStats(api),
		export:       services.NewExport(api),
		style:        style,
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "login":
		err = a.cmdLogin(ctx, os.Args[2:])
	case "logout":
		err = a.cmdLogout()
	case "whoami":
		err = a.cmdWhoami(ctx)
	case "routes":
		err = a.cmdRoutes(ctx)
	case "dashboard":
		err = a.cmdDashboard(ctx)
	case "species":
		err = a.cmdSpecies(ctx, os.Args[2:])
	case "observe":
		err = a.cmdObserve(ctx, os.Args[2:])
	case "map":
		err = a.cmdMap(ctx, os.Args[2:])
	case "export":
		err = a.cmdExport(ctx, os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		cli.Error(err.Error())
		os.Exit(1)
	}
}

// confirm prompts on stdin and accepts y/yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
