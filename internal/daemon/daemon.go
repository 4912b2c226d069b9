package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tempo-sh/tempo/internal/api"
	"github.com/tempo-sh/tempo/internal/engine"
	"github.com/tempo-sh/tempo/internal/health"
	"github.com/tempo-sh/tempo/internal/infra/sqlite"
	"github.com/tempo-sh/tempo/internal/infra/syncer"
	"github.com/tempo-sh/tempo/internal/session"
)

// Daemon is the core tempo runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Engine  *engine.Countdown
	Session *session.Session
	Server  *api.Server
	Health  *health.Checker
	Sync    *syncer.Pusher
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Node.DataDir
	if dataDir == "" {
		dataDir = tempoHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Countdown engine is owned here and injected into the session.
	eng := engine.New(parseDuration(cfg.Timer.Tick, engine.DefaultTick))

	sessCfg := session.DefaultConfig()
	if cfg.Timer.DefaultDuration > 0 {
		sessCfg.DefaultDuration = cfg.Timer.DefaultDuration
	}
	if cfg.Timer.MaxDuration > 0 {
		sessCfg.MaxDuration = cfg.Timer.MaxDuration
	}
	sess := session.New(sessCfg, eng, db)

	// Best-effort remote sync of terminal records (nil when disabled).
	push := syncer.New(cfg.Sync.Endpoint, cfg.Sync.Token,
		parseDuration(cfg.Sync.Timeout, 10*time.Second))
	if push != nil {
		sess.OnPersist(push.Push)
	}

	srv := api.NewServer(sess, db, db)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	checker := health.NewChecker(db, dataDir, sess)
	srv.SetHealth(checker)

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Engine:  eng,
		Session: sess,
		Server:  srv,
		Health:  checker,
		Sync:    push,
	}, nil
}

// Serve starts the engine, session and HTTP server, blocking until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Background actors: the countdown loop and its single consumer.
	go d.Engine.Run(ctx)
	go d.Session.Run(ctx, d.Engine.Events())
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		cancel()
		d.Session.Flush() // let in-flight persists land
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("tempo serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}
	if d.Sync != nil {
		fmt.Printf("  Sync: %s\n", d.Config.Sync.Endpoint)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Session != nil {
		d.Session.Flush()
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			log.Printf("[daemon] close database: %v", err)
		}
	}
}

// parseDuration parses a duration string, returning a fallback on error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
