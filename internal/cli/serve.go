// serve.go implements the "mockround serve" command, the bundled question service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mockround/mockround/internal/backend"
	"github.com/mockround/mockround/internal/llm"
	mlog "github.com/mockround/mockround/internal/log"
	"github.com/mockround/mockround/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question service",
	Long: `Serve the question API over HTTP backed by a local SQLite database.
HR questions are personalised with Gemini when GEMINI_API_KEY is set and
fall back to a fixed list otherwise. Metrics are exposed on /metrics.`,
	RunE: runServe,
}

var (
	serveAddr string
	serveDB   string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveDB != "" {
		cfg.Server.DBPath = serveDB
	}
	logger := mlog.Setup(cmd.ErrOrStderr(), mlog.ParseLevel(cfg.LogLevel))

	dbPath := cfg.Server.DBPath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dir, dbPath)
	}
	store, err := session.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var model llm.Client
	if cfg.Server.GeminiAPIKey != "" {
		gc, err := llm.NewGeminiClient(ctx, cfg.Server.GeminiAPIKey, cfg.Server.GeminiModel)
		if err != nil {
			return fmt.Errorf("starting gemini client: %w", err)
		}
		defer gc.Close()
		model = gc
	} else {
		logger.Info("GEMINI_API_KEY not set, serving the fixed HR question list and no ATS analysis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	limiter := backend.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	defer limiter.Stop()

	srv := backend.NewServer(backend.Deps{
		Store:       store,
		HR:          backend.NewGeminiHR(model, logger),
		ATS:         backend.NewATS(model, logger),
		Metrics:     backend.NewCollector(reg),
		Gatherer:    reg,
		RateLimiter: limiter,
		Logger:      logger,
	})
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("question service listening",
			slog.String("addr", cfg.Server.Addr),
			slog.String("db", dbPath),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
