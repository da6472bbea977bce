package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/km-arc/go-inject/app"
	"github.com/km-arc/go-inject/config"
	"github.com/km-arc/go-inject/inject"
)

func main() {
	application := app.New() // loads .env automatically

	log := application.Logger()

	if err := application.Register(demoProvider{}); err != nil {
		log.Fatal().Err(err).Msg("provider registration failed")
	}

	if err := application.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// ── Demo provider ─────────────────────────────────────────────────────────────

// demoProvider declares the whole demo object graph as registry entries: a
// greeting value, a scoped item store, and the router that consumes both.
type demoProvider struct{}

func (demoProvider) Provide(r *inject.Registry) {
	r.Add(map[string]any{
		"greeting": "Hello from go-inject",

		"store": inject.NewFactory("store", newStore,
			inject.Arg("logger"),
		),

		"router": inject.NewFactory("router", newRouter,
			inject.Arg("config"),
			inject.Arg("logger"),
			inject.Arg("greeting"),
			inject.Arg("store"),
		),
	})
}

func (demoProvider) Boot(in *inject.Injector) error {
	// Resolve the full graph once so wiring mistakes fail at boot, not on
	// the first request.
	res, err := in.Resolve("router")
	if err != nil {
		return err
	}
	return res.Close()
}

// ── Store ─────────────────────────────────────────────────────────────────────

// Store is an in-memory item store with an explicit open/close lifecycle,
// released automatically when its owning resolution scope exits.
type Store struct {
	log   zerolog.Logger
	items []string
	open  bool
}

func newStore(_ *inject.Injector, args inject.Args) (any, error) {
	logger, _ := args.Get("logger")
	return &Store{log: logger.(zerolog.Logger)}, nil
}

// Acquire opens the store.
func (s *Store) Acquire() error {
	s.open = true
	s.items = []string{"alpha", "beta", "gamma"}
	s.log.Debug().Msg("store opened")
	return nil
}

// Release closes the store.
func (s *Store) Release() error {
	s.open = false
	s.items = nil
	s.log.Debug().Msg("store closed")
	return nil
}

// Items returns the stored items, or nil once the store is closed.
func (s *Store) Items() []string {
	if !s.open {
		return nil
	}
	return s.items
}

// ── Router ────────────────────────────────────────────────────────────────────

func newRouter(_ *inject.Injector, args inject.Args) (any, error) {
	cfg, _ := args.Get("config")
	logger, _ := args.Get("logger")
	greeting, _ := args.Get("greeting")
	store, _ := args.Get("store")

	log := logger.(zerolog.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": greeting.(string),
			"app":     cfg.(*config.Config).App.Name,
		})
	})

	r.Get("/items", func(w http.ResponseWriter, req *http.Request) {
		log.Debug().Str("path", req.URL.Path).Msg("listing items")
		writeJSON(w, http.StatusOK, map[string]any{
			"items": store.(*Store).Items(),
		})
	})

	var handler http.Handler = r
	return handler, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
