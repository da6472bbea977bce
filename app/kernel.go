// Package app is the demo application kernel: it wires configuration,
// logging, and the HTTP surface through the injector, so the whole object
// graph — router included — is declared as registry entries.
package app

import (
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-inject/config"
	"github.com/km-arc/go-inject/inject"
)

// Application is the top-level handle. It embeds the Injector so user code
// can call app.Resolve directly.
type Application struct {
	*inject.Injector
	Registry  *inject.Registry
	Providers *inject.ProviderSet

	cfg *config.Config
	log zerolog.Logger
}

// New creates and bootstraps the application. Config and logger are built
// eagerly and seeded into the registry under "config" and "logger"; every
// other binding comes from providers.
func New(envFiles ...string) *Application {
	cfg := config.Load(envFiles...)
	logger := newLogger(cfg)

	registry := inject.NewRegistry()
	registry.Add(map[string]any{
		"config": cfg,
		"logger": logger,
	})

	return &Application{
		Injector:  inject.New(registry, inject.WithLogger(logger)),
		Registry:  registry,
		Providers: inject.NewProviderSet(registry),
		cfg:       cfg,
		log:       logger,
	}
}

// Register installs a provider.
func (a *Application) Register(p inject.Provider) error {
	return a.Providers.Register(p)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot(a.Injector)
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() zerolog.Logger { return a.log }

// Handler resolves the "router" binding and returns it with the resolution
// that owns its scoped resources. The caller closes the resolution when the
// handler is retired.
func (a *Application) Handler() (http.Handler, *inject.Resolution, error) {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return nil, nil, err
		}
	}

	res, err := a.Resolve("router")
	if err != nil {
		return nil, nil, err
	}

	handler, err := inject.Get[http.Handler](res, 0)
	if err != nil {
		_ = res.Close()
		return nil, nil, err
	}
	return handler, res, nil
}

// Run boots the application and serves HTTP until the listener fails.
// Scoped resources held by the router graph release when the server stops.
func (a *Application) Run() error {
	handler, res, err := a.Handler()
	if err != nil {
		return err
	}
	defer res.Close()

	addr := ":" + a.cfg.App.Port
	a.log.Info().
		Str("app", a.cfg.App.Name).
		Str("env", a.cfg.App.Env).
		Str("addr", addr).
		Msg("listening")

	return http.ListenAndServe(addr, handler)
}

// newLogger builds the application logger from config.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Log.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
