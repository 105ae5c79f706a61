package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/WildTrack-Africa/field_client/internal/cli"
	"github.com/WildTrack-Africa/field_client/internal/domain"
	"github.com/WildTrack-Africa/field_client/internal/forms"
	"github.com/WildTrack-Africa/field_client/internal/geoloc"
	"github.com/WildTrack-Africa/field_client/internal/mapview"
	"github.com/WildTrack-Africa/field_client/internal/services"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password (omit to read from WILDTRACK_PASSWORD)")
	fs.Parse(args)

	if *password == "" {
		*password = os.Getenv("WILDTRACK_PASSWORD")
	}

	form := forms.NewLoginForm(a.session)
	form.SetUsername(*username)
	form.SetPassword(*password)

	spinner := cli.NewSpinner("signing in")
	spinner.Start()
	user, err := form.Submit(ctx)
	if err != nil {
		spinner.Fail(form.ErrorMessage())
		return err
	}
	a.shell.SetUser(user)
	spinner.Succeed(fmt.Sprintf("signed in as %s (%s)", user.Username, user.Role))
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	cli.Success("signed out")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	user := a.shell.Bootstrap(ctx)
	if user == nil {
		return fmt.Errorf("not signed in")
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Role)
	if user.FullName != "" {
		fmt.Println(user.FullName)
	}
	fmt.Println(user.Email)
	return nil
}

func (a *app) cmdRoutes(ctx context.Context) error {
	a.shell.Bootstrap(ctx)
	for _, route := range a.shell.Routes() {
		fmt.Println(route)
	}
	return nil
}

func (a *app) cmdDashboard(ctx context.Context) error {
	spinner := cli.NewSpinner("loading dashboard")
	spinner.Start()
	stats, err := a.stats.Dashboard(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("species tracked:     %d\n", stats.TotalSpecies)
	fmt.Printf("total observations:  %d\n", stats.TotalObservations)
	fmt.Printf("recent observations: %d\n", stats.RecentObservations)
	if len(stats.SpeciesObservations) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(stats.SpeciesObservations))
		for _, row := range stats.SpeciesObservations {
			rows = append(rows, []string{row.Species, strconv.Itoa(row.Count)})
		}
		cli.PrintTable([]string{"species", "observations"}, rows)
	}
	return nil
}

func (a *app) cmdSpecies(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("species: expected list|create|update|delete|import|stats")
	}

	controller := forms.NewSpeciesController(a.species, a.logger)
	controller.Confirm = confirm

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("species list", flag.ExitOnError)
		search := fs.String("search", "", "substring match on common or scientific name")
		category := fs.String("category", forms.FilterAll, "animal|plant|all")
		status := fs.String("status", forms.FilterAll, "conservation status code or all")
		fs.Parse(args[1:])

		if err := controller.Refresh(ctx); err != nil {
			return err
		}
		controller.SetSearch(*search)
		controller.SetCategoryFilter(*category)
		controller.SetStatusFilter(*status)

		matches := controller.Filtered()
		rows := make([][]string, 0, len(matches))
		for _, s := range matches {
			rows = append(rows, []string{
				strconv.Itoa(s.ID),
				a.style.GlyphFor(s.CommonName) + " " + s.CommonName,
				s.ScientificName,
				string(s.Category),
				string(s.ConservationStatus),
			})
		}
		cli.PrintTable([]string{"id", "common name", "scientific name", "category", "status"}, rows)
		fmt.Printf("%d species\n", len(matches))
		return nil

	case "create", "update":
		fs := flag.NewFlagSet("species "+args[0], flag.ExitOnError)
		id := fs.Int("id", 0, "species id (update only)")
		common := fs.String("common-name", "", "common name")
		scientific := fs.String("scientific-name", "", "scientific name")
		category := fs.String("category", string(domain.CategoryAnimal), "animal|plant")
		status := fs.String("status", string(domain.StatusLeastConcern), "conservation status code")
		description := fs.String("description", "", "general description")
		habitat := fs.String("habitat", "", "habitat description")
		threats := fs.String("threats", "", "identified threats")
		actions := fs.String("actions", "", "conservation actions")
		population := fs.String("population", "", "population estimate")
		fs.Parse(args[1:])

		form := forms.SpeciesForm{
			CommonName:          *common,
			ScientificName:      *scientific,
			Category:            *category,
			ConservationStatus:  *status,
			Description:         *description,
			HabitatDescription:  *habitat,
			Threats:             *threats,
			ConservationActions: *actions,
			PopulationEstimate:  *population,
		}

		var err error
		if args[0] == "update" {
			if *id == 0 {
				return fmt.Errorf("species update: -id is required")
			}
			err = controller.Update(ctx, *id, form)
		} else {
			err = controller.Create(ctx, form)
		}
		if err != nil {
			return err
		}
		cli.Success(controller.SuccessMessage())
		return nil

	case "delete":
		fs := flag.NewFlagSet("species delete", flag.ExitOnError)
		id := fs.Int("id", 0, "species id")
		fs.Parse(args[1:])
		if *id == 0 {
			return fmt.Errorf("species delete: -id is required")
		}
		if err := controller.Delete(ctx, *id); err != nil {
			if err == forms.ErrAborted {
				cli.Info("delete aborted")
				return nil
			}
			return err
		}
		cli.Success(controller.SuccessMessage())
		return nil

	case "import":
		fs := flag.NewFlagSet("species import", flag.ExitOnError)
		file := fs.String("file", "", "spreadsheet path (.xlsx)")
		fs.Parse(args[1:])
		if *file == "" {
			return fmt.Errorf("species import: -file is required")
		}
		content, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("read spreadsheet: %w", err)
		}
		controller.SetFile(*file, content)

		spinner := cli.NewSpinner("importing")
		spinner.Start()
		result, err := controller.Import(ctx)
		spinner.Stop()
		if err != nil {
			return err
		}
		cli.Success(result.Message)
		for _, rowErr := range result.Errors {
			cli.Warning(rowErr)
		}
		return nil

	case "stats":
		fs := flag.NewFlagSet("species stats", flag.ExitOnError)
		id := fs.Int("id", 0, "species id")
		fs.Parse(args[1:])
		if *id == 0 {
			return fmt.Errorf("species stats: -id is required")
		}
		stats, err := a.stats.Species(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("observations: %d\n", stats.TotalObservations)
		fmt.Printf("individuals:  %d\n", stats.TotalIndividuals)
		if stats.FirstObservation != "" {
			fmt.Printf("first seen:   %s\n", stats.FirstObservation)
		}
		if stats.LastObservation != "" {
			fmt.Printf("last seen:    %s\n", stats.LastObservation)
		}
		return nil

	default:
		return fmt.Errorf("species: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdObserve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("observe", flag.ExitOnError)
	speciesID := fs.String("species", "", "species id")
	lat := fs.String("lat", "", "latitude")
	lon := fs.String("lon", "", "longitude")
	useGPS := fs.Bool("gps", false, "capture coordinates from the configured GPS source")
	date := fs.String("date", "", "observation date (YYYY-MM-DD, default today)")
	count := fs.String("count", "1", "number of individuals")
	activity := fs.String("activity", "", "activity type")
	weather := fs.String("weather", "", "weather conditions")
	temperature := fs.String("temperature", "", "temperature in °C")
	humidity := fs.String("humidity", "", "humidity in %")
	behavior := fs.String("behavior", "", "behavior notes")
	health := fs.String("health", "", "apparent health status")
	age := fs.String("age", "", "age group")
	sex := fs.String("sex", "", "sex")
	notes := fs.String("notes", "", "free notes")
	fs.Parse(args)

	form := forms.NewObservationForm(a.observations, gpsFromEnv(), a.logger)

	if *useGPS {
		if err := form.CaptureLocation(ctx); err != nil {
			return fmt.Errorf("%s", form.ErrorMessage())
		}
		cli.Info(fmt.Sprintf("position %s, %s", form.Field(forms.FieldLatitude), form.Field(forms.FieldLongitude)))
	}

	set := func(field, value string) {
		if value != "" {
			form.SetField(field, value)
		}
	}
	set(forms.FieldSpeciesID, *speciesID)
	set(forms.FieldLatitude, *lat)
	set(forms.FieldLongitude, *lon)
	set(forms.FieldDate, *date)
	set(forms.FieldCount, *count)
	set(forms.FieldActivityType, *activity)
	set(forms.FieldWeather, *weather)
	set(forms.FieldTemperature, *temperature)
	set(forms.FieldHumidity, *humidity)
	set(forms.FieldBehaviorNotes, *behavior)
	set(forms.FieldHealthStatus, *health)
	set(forms.FieldAgeGroup, *age)
	set(forms.FieldSex, *sex)
	set(forms.FieldNotes, *notes)

	spinner := cli.NewSpinner("recording observation")
	spinner.Start()
	created, err := form.Submit(ctx)
	if err != nil {
		spinner.Fail(form.ErrorMessage())
		return err
	}
	spinner.Succeed(fmt.Sprintf("%s (observation %d)", form.SuccessMessage(), created.ID))
	return nil
}

func (a *app) cmdMap(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	speciesID := fs.Int("species", 0, "filter by species id (0 for all)")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	fs.Parse(args)

	controller := mapview.NewController(a.observations, a.species, a.style, a.logger)

	var startT, endT *time.Time
	if *start != "" {
		t, err := time.Parse("2006-01-02", *start)
		if err != nil {
			return fmt.Errorf("map: bad start date: %w", err)
		}
		startT = &t
	}
	if *end != "" {
		t, err := time.Parse("2006-01-02", *end)
		if err != nil {
			return fmt.Errorf("map: bad end date: %w", err)
		}
		endT = &t
	}
	controller.SetDateRange(startT, endT)

	var filter *int
	if *speciesID > 0 {
		filter = speciesID
	}

	spinner := cli.NewSpinner("loading map data")
	spinner.Start()
	err := controller.SetSpeciesFilter(ctx, filter)
	spinner.Stop()
	if err != nil {
		return err
	}

	markers := controller.Markers()
	rows := make([][]string, 0, len(markers))
	for _, m := range markers {
		notes := m.Popup.Notes
		if len(notes) > 30 {
			notes = notes[:27] + "..."
		}
		rows = append(rows, []string{
			m.Glyph + " " + m.Popup.SpeciesName,
			fmt.Sprintf("%.5f, %.5f", m.Latitude, m.Longitude),
			strconv.Itoa(m.Popup.Count),
			m.Popup.Date,
			m.Popup.Activity,
			string(m.Popup.Status),
			notes,
		})
	}
	cli.PrintTable([]string{"species", "position", "count", "date", "activity", "status", "notes"}, rows)
	fmt.Printf("%d observation(s) shown\n", len(markers))
	return nil
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	what := fs.String("what", "observations", "observations|species")
	format := fs.String("format", "csv", "export format")
	out := fs.String("out", "", "output path (default <what>.<format>)")
	speciesID := fs.String("species", "", "observation filter: species id")
	start := fs.String("start", "", "observation filter: start date")
	end := fs.String("end", "", "observation filter: end date")
	fs.Parse(args)

	spinner := cli.NewSpinner("downloading export")
	spinner.Start()

	var data []byte
	var err error
	switch *what {
	case "observations":
		data, err = a.export.Observations(ctx, *format, services.Filters{
			"species_id": *speciesID,
			"start_date": *start,
			"end_date":   *end,
		})
	case "species":
		data, err = a.export.Species(ctx, *format)
	default:
		spinner.Stop()
		return fmt.Errorf("export: unknown target %q", *what)
	}
	spinner.Stop()
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = *what + "." + *format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	cli.Success(fmt.Sprintf("wrote %d bytes to %s", len(data), path))
	return nil
}

// gpsFromEnv builds a location provider from WILDTRACK_GPS_LAT/LON, the hook
// an external GPS reader can populate. Returns nil when unset so the form
// reports geolocation as unavailable.
func gpsFromEnv() geoloc.Provider {
	latStr, lonStr := os.Getenv("WILDTRACK_GPS_LAT"), os.Getenv("WILDTRACK_GPS_LON")
	if latStr == "" || lonStr == "" {
		return nil
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if latErr != nil || lonErr != nil {
		return geoloc.Static{Err: fmt.Errorf("geoloc: bad GPS coordinates in environment")}
	}
	return geoloc.Static{Position: geoloc.Position{Latitude: lat, Longitude: lon}}
}
