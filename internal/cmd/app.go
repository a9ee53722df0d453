package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/carelane/carectl/internal/api"
	"github.com/carelane/carectl/internal/auth"
	"github.com/carelane/carectl/internal/authz"
	"github.com/carelane/carectl/internal/cache"
	"github.com/carelane/carectl/internal/config"
	"github.com/carelane/carectl/internal/guard"
	"github.com/carelane/carectl/internal/log"
	"github.com/carelane/carectl/internal/session"
	"github.com/carelane/carectl/internal/ux"
)

// App wires the configuration, logger, API client, session store, and auth
// manager together for a single command invocation. Commands get one via
// newApp in their RunE and never touch the underlying pieces directly for
// authorization decisions; requireAuth and requireAction are the gates.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Client *api.Client
	Store  *session.Store
	Auth   *auth.Manager
	Format string

	appointments *cache.Collection[[]api.Appointment]
	patients     *cache.Collection[[]api.Patient]
	doctors      *cache.Collection[[]api.Doctor]
}

// newApp builds the application from the command's flags, loads the
// configuration, and restores any persisted session.
func newApp(cmd *cobra.Command) (*App, error) {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	logger := log.Default(cfg.Logging.Level, cfg.Logging.Format)

	client := api.NewClient(cfg.API.BaseURL)
	client.HTTPClient.Timeout = cfg.API.Timeout

	store := session.NewStore(cfg.State.Dir)
	manager := auth.NewManager(client, store, logger)
	manager.SetForcedLogoutHook(func() {
		fmt.Fprintln(os.Stderr, "Session expired or rejected by the backend.")
		fmt.Fprintln(os.Stderr, "Run 'carectl auth login' to sign in again.")
	})
	manager.Initialize()

	return &App{
		Config:       cfg,
		Logger:       logger,
		Client:       client,
		Store:        store,
		Auth:         manager,
		Format:       format,
		appointments: cache.NewCollection[[]api.Appointment](),
		patients:     cache.NewCollection[[]api.Patient](),
		doctors:      cache.NewCollection[[]api.Doctor](),
	}, nil
}

// requireAuth gates a command behind an authenticated session. The route
// names the command the user asked for, so the error can tell them where to
// resume after logging in.
func (a *App) requireAuth(route string) error {
	decision := guard.Protected(guard.State{
		Loading:       a.Auth.IsLoading(),
		Authenticated: a.Auth.IsAuthenticated(),
	}, route)

	if decision.Outcome == guard.Redirect {
		return auth.NewError(auth.ErrNotAuthenticated,
			fmt.Sprintf("not logged in; run 'carectl auth login', then retry 'carectl %s'", decision.From))
	}
	return nil
}

// requireAction gates a command behind both an authenticated session and the
// current role's permission to perform the action.
func (a *App) requireAction(route string, action authz.Action) error {
	if err := a.requireAuth(route); err != nil {
		return err
	}
	return authz.Require(a.Auth.Role(), action)
}

// formatter returns the output formatter selected by --format.
func (a *App) formatter() (ux.Formatter, error) {
	return ux.NewFormatter(a.Format, nil)
}

// textOutput reports whether --format selected the human-readable table
// rendering rather than a machine format.
func (a *App) textOutput() bool {
	return a.Format == "" || a.Format == "text"
}
