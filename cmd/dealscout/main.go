package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/grimdealz/dealscout/pkg/catalog"
	"github.com/grimdealz/dealscout/pkg/config"
	"github.com/grimdealz/dealscout/pkg/llm"
	"github.com/grimdealz/dealscout/pkg/notify"
	"github.com/grimdealz/dealscout/pkg/pipeline"
	"github.com/grimdealz/dealscout/pkg/prefilter"
	"github.com/grimdealz/dealscout/pkg/reddit"
	"github.com/grimdealz/dealscout/pkg/state"
	"github.com/grimdealz/dealscout/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"dealscout.yml" description:"config file path"`
	Once   bool   `long:"once" description:"run a single pass and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// load .env if present, real environment takes precedence
	_ = godotenv.Load()

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	lgr.Printf("[INFO] shutdown complete")
}

// run loads the config, wires the pipeline and executes either a single pass
// or the polling daemon with the optional status server
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLog(opts.Debug, cfg.Reddit.ClientSecret, cfg.Reddit.Password, cfg.LLM.APIKey, cfg.Telegram.Token)
	lgr.Printf("[INFO] starting dealscout version %s", revision)

	catalogStore, err := catalog.NewStore(ctx, catalog.Config{
		DSN:             cfg.Catalog.DSN,
		MaxOpenConns:    cfg.Catalog.MaxOpenConns,
		MaxIdleConns:    cfg.Catalog.MaxIdleConns,
		ConnMaxLifetime: cfg.Catalog.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if closeErr := catalogStore.Close(); closeErr != nil {
			lgr.Printf("[WARN] failed to close catalog: %v", closeErr)
		}
	}()

	pl := pipeline.New(
		reddit.NewClient(cfg.Reddit),
		prefilter.New(nil),
		llm.NewClassifier(cfg.LLM),
		catalog.NewMatcher(catalogStore),
		notify.NewTelegram(cfg.Telegram),
		state.New(cfg.State.Path),
		pipeline.Config{
			Sources:             cfg.Sources,
			PollInterval:        cfg.Schedule.PollInterval,
			FetchLimit:          cfg.Schedule.FetchLimit,
			SeedCount:           cfg.Schedule.SeedCount,
			ConfidenceThreshold: cfg.LLM.ConfidenceThreshold,
			MaxWorkers:          cfg.Schedule.MaxWorkers,
		},
	)

	if opts.Once {
		if _, err := pl.RunPass(ctx); err != nil {
			return fmt.Errorf("pass failed: %w", err)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pl.Run(gctx) })

	if cfg.Server.Enabled {
		srv := server.New(cfg, pl, revision, opts.Debug)
		g.Go(func() error { return srv.Run(gctx) })
	}

	return g.Wait()
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
