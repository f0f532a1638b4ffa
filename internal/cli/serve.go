package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/internal/server"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/session"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, store string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Sessions keep a layout open between requests so rectangles can be added a few
at a time. The session store is chosen by --store or the [sessions] section of
the config file:
  memory  in-process, lost on restart (default)
  file    one JSON file per session
  redis   shared, expired by Redis
  mongo   shared, expired by a TTL index`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if store != "" {
				cfg.Sessions.Store = store
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&store, "store", "", "session store: memory, file, redis, mongo")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	if c.Logger.GetLevel() <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
		defer observability.Reset()
	}

	store, err := newSessionStore(ctx, cfg.Sessions)
	if err != nil {
		return fmt.Errorf("open %s session store: %w", cfg.Sessions.Store, err)
	}
	defer store.Close()

	c.Config = cfg
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	mgr := session.NewManager(store, cfg.Sessions.TTL, c.Logger)
	go mgr.RunCleanup(ctx, cfg.Sessions.CleanupInterval)

	srv := server.New(mgr, runner,
		server.WithLogger(c.Logger),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))

	printSuccess("Serving on %s", StyleLink.Render(displayAddr(cfg.Server.Addr)))
	printDetail("Sessions: %s (ttl %s)", cfg.Sessions.Store, cfg.Sessions.TTL)
	printDetail("Cache: %s", cfg.Cache.Backend)

	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
}

// newSessionStore opens the configured session backend.
func newSessionStore(ctx context.Context, cfg config.SessionsConfig) (session.Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return session.NewFileStore(cfg.Dir)
	case config.StoreRedis:
		return session.NewRedisStore(ctx, cfg.RedisURL, "")
	case config.StoreMongo:
		return session.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return session.NewMemoryStore(), nil
	}
}

// displayAddr turns a listen address into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
