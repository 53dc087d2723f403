package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/skyward/preflight/internal/api"
	"github.com/skyward/preflight/internal/config"
	"github.com/skyward/preflight/internal/ingest"
	"github.com/skyward/preflight/internal/metrics"
	"github.com/skyward/preflight/internal/report"
	"github.com/skyward/preflight/internal/risk"
	"github.com/skyward/preflight/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	inputPath := flag.String("input", "", "score a CSV file and exit instead of serving")
	outputPath := flag.String("output", "", "write the batch report here (default stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	m := metrics.New()
	scorer, err := buildScorer(cfg, m, log)
	if err != nil {
		log.Error("Failed to build scorer", logger.Error(err))
		os.Exit(1)
	}

	if *inputPath != "" {
		if err := scoreFile(scorer, *inputPath, *outputPath); err != nil {
			log.Error("Batch scoring failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg, scorer, log); err != nil {
		log.Error("Server error", logger.Error(err))
		os.Exit(1)
	}
}

// buildScorer assembles the scoring pipeline: policy overrides from config,
// the optional classifier artifact, and injected clock/metrics/logger.
func buildScorer(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*risk.Scorer, error) {
	policy := risk.DefaultPolicy()
	policy.Boundaries = risk.Boundaries{High: cfg.Scoring.HighBoundary, Medium: cfg.Scoring.MediumBoundary}
	policy.RuleWeight = cfg.Scoring.RuleWeight
	policy.FatigueWindowDays = cfg.Scoring.FatigueWindowDays
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring policy: %w", err)
	}

	// A missing or broken artifact degrades to rule-only scoring, never fatal.
	var model risk.ModelScorer
	if cfg.Model.Enabled {
		loaded, err := risk.LoadArtifact(cfg.Model.ArtifactPath)
		if err != nil {
			log.Warn("Classifier artifact unavailable, scoring with rules only",
				logger.String("path", cfg.Model.ArtifactPath),
				logger.Error(err))
		} else {
			model = loaded
			m.ModelEnabled.Set(1)
			log.Info("Classifier artifact loaded",
				logger.String("name", loaded.Name()),
				logger.Int("features", len(loaded.Features())))
		}
	}

	return risk.NewScorer(policy, model, clockwork.NewRealClock(), m, log), nil
}

// scoreFile scores one CSV table and writes the JSON report.
func scoreFile(scorer *risk.Scorer, inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	records, err := ingest.ReadTable(in)
	if err != nil {
		return fmt.Errorf("read table: %w", err)
	}

	results := scorer.ScoreBatch(records)
	doc := report.Build(scorer.Policy().Version, time.Now().UTC(), records, results)

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return doc.WriteJSON(out)
}

// serve runs the HTTP API until SIGINT/SIGTERM, then drains connections.
func serve(cfg *config.Config, scorer *risk.Scorer, log *logger.Logger) error {
	router := api.NewRouter(scorer, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
