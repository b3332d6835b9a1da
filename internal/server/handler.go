package server

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"gloam/internal/config"
	"gloam/internal/event"
	"gloam/internal/httpmw"
	"gloam/internal/objective"
	"gloam/internal/telemetry"
	"gloam/internal/template"
	"gloam/internal/tracker"
	"gloam/internal/world"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger

	// Rand drives template selection and parameter generation. Nil gets a
	// time-seeded source.
	Rand *rand.Rand

	// StartDay installs the first daily objective during construction.
	StartDay bool
}

// NewApp wires the full engine: bank, manager, tracker and bus, all backed
// by the in-memory world adapters.
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	app := &App{
		Bus:       event.NewBus(),
		Ledger:    world.NewMemoryLedger(),
		Notifier:  world.NewMemoryNotifier(),
		Highlight: world.NewMemoryHighlighter(),
		Actions:   world.NewMemoryActionRegistry(),
		Map:       world.NewStubMap(),
		Telemetry: telemetry.NewMemoryRepository(),
		BootNow:   time.Now(),
	}

	sites := world.StaticSites{
		{X: 120, Y: 80},
		{X: 640, Y: 420},
		{X: 300, Y: 710},
	}

	app.Bank = template.NewBank(opts.Rand, opts.Config.Balance)
	app.Manager = objective.NewManager(objective.Deps{
		Bank:          app.Bank,
		Ledger:        app.Ledger,
		Notifier:      app.Notifier,
		Highlights:    app.Highlight,
		Actions:       app.Actions,
		Sites:         sites,
		Telemetry:     app.Telemetry,
		Rand:          opts.Rand,
		Logger:        opts.Logger,
		SanityReward:  opts.Config.Balance.SanityReward,
		SanityPenalty: opts.Config.Balance.SanityPenalty,
	})

	tr := tracker.New(tracker.Deps{
		Manager:      app.Manager,
		Locations:    app.Map,
		Sites:        sites,
		Notifier:     app.Notifier,
		Telemetry:    app.Telemetry,
		Logger:       opts.Logger,
		RitualRadius: opts.Config.Balance.RitualRadius,
	})
	app.TrackerSub = tr.Attach(app.Bus)

	if opts.StartDay {
		app.Manager.StartNewDay(context.Background(), world.State{})
	}

	return app, nil
}

// NewHandler builds the App and wraps the API routes in the middleware
// stack.
func NewHandler(opts Options) (*App, http.Handler, error) {
	app, err := NewApp(opts)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	rr := &RouteRegistry{}
	RegisterAPIRoutes(mux, rr, app)

	h := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
	return app, h, nil
}
