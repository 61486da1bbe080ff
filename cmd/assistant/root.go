package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/console"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/service"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/db/redis"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/db/sqlite"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/httpapi"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/infrastructure/memstore"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/pkg/config"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/render"
	"github.com/Vshn2k5/HEALTHBITE-Kukku/pkg/logger"
)

// rootOptions lets tests replace the environment and the session store.
type rootOptions struct {
	lookuper envconfig.Lookuper
	store    ports.SessionStore
}

// app holds what every subcommand needs once flags and config are read.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	term   *render.Terminal
	client *httpapi.Client
	store  ports.SessionStore
	close  func() error
}

func (a *app) authClient(cmd *cobra.Command) *service.AuthClient {
	nav := console.NewNavigator(cmd.OutOrStdout(), a.term)
	alert := console.NewAlerter(cmd.ErrOrStderr(), a.term)
	return service.NewAuthClient(a.client, a.store, nav, alert, logger.For("auth"))
}

// Close releases the session store. It is safe to call when no store was
// opened.
func (a *app) Close() error {
	if a.close == nil {
		return nil
	}
	err := a.close()
	a.close = nil
	return err
}

// execute runs root and releases the session store whatever the outcome;
// cobra skips post-run hooks when a command fails.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if cerr := a.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close session store: %w", cerr)
	}
	return err
}

func newRootCmd(opts rootOptions) (*cobra.Command, *app) {
	a := &app{term: render.NewTerminal()}
	var apiURL, logLevel string

	root := &cobra.Command{
		Use:   "assistant",
		Short: "HealthBite client: sign in and chat with the health assistant",
		Long: `assistant signs you in to a HealthBite API, keeps the session on disk and
hosts the health assistant widget in the terminal.

Example usage:
  assistant register --name Asha --email asha@example.com --password 'Secret1!'
  assistant login --email asha@example.com --password 'Secret1!'
  assistant chat
  assistant logout`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), opts, apiURL, logLevel)
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", "", "HealthBite API base URL (overrides HB_API_URL)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newChatCmd(a),
	)
	return root, a
}

func (a *app) init(ctx context.Context, opts rootOptions, apiURL, logLevel string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	l := opts.lookuper
	if l == nil {
		l = envconfig.OsLookuper()
	}
	cfg, err := config.LoadWith(ctx, l)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	a.cfg = cfg

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "assistant"})
	a.log = logger.For("host")
	a.client = httpapi.New(cfg.API.BaseURL, cfg.API.Timeout, logger.For("httpapi"))

	if opts.store != nil {
		a.store = opts.store
		if c, ok := opts.store.(io.Closer); ok {
			a.close = c.Close
		}
		return nil
	}
	return a.openStore(ctx)
}

// openStore selects the durable session backend. Sessions are scoped to the
// API base URL, the way browser storage is scoped to an origin.
func (a *app) openStore(ctx context.Context) error {
	origin := a.cfg.API.BaseURL
	switch a.cfg.Session.Backend {
	case "sqlite":
		s, err := sqlite.Open(a.cfg.Session.Path, origin, logger.For("session"))
		if err != nil {
			return fmt.Errorf("session store: %w", err)
		}
		a.store, a.close = s, s.Close
	case "redis":
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     a.cfg.Session.Redis.Addr,
			Password: a.cfg.Session.Redis.Password,
			DB:       a.cfg.Session.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("session store: %w", err)
		}
		a.store, a.close = redis.NewSessionStore(client, origin, logger.For("session")), client.Close
	default:
		a.store = memstore.NewSessionStore()
	}
	a.log.Debug().Str("backend", a.cfg.Session.Backend).Str("origin", origin).Msg("session store ready")
	return nil
}
