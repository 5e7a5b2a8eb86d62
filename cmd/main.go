package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtroode/creatorhub/internal/config"
	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/observability/tracing"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if len(args) == 0 {
		printUsage(os.Stderr)
		return exitUsage
	}
	switch args[0] {
	case "version":
		logAppVersion(os.Stdout)
		return 0
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return 0
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.Environment)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	sessions, closeSessions, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		return 1
	}
	defer closeSessions()

	a, err := newApp(cfg, logger, sessions, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		logger.Error("failed to initialize client", "error", err)
		return 1
	}

	return exitCode(os.Stderr, a.run(ctx, args))
}

func logAppVersion(w io.Writer) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Fprintf(w, tmpl, buildVersion, buildDate, buildCommit)
}
