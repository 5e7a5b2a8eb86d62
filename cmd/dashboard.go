package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/creatorhub/internal/datacache"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/observability/metrics"
	"github.com/dtroode/creatorhub/internal/server"
	"github.com/dtroode/creatorhub/internal/service"
)

// watchFlag is a duration flag that may also be given bare. -watch uses the
// configured refresh interval, -watch=10s overrides it.
type watchFlag struct {
	interval time.Duration
	fallback time.Duration
}

func (w *watchFlag) String() string {
	if w == nil || w.interval == 0 {
		return ""
	}
	return w.interval.String()
}

func (w *watchFlag) Set(v string) error {
	switch v {
	case "true":
		w.interval = w.fallback
		return nil
	case "false":
		w.interval = 0
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	if d <= 0 {
		return errors.New("interval must be positive")
	}
	w.interval = d
	return nil
}

func (w *watchFlag) IsBoolFlag() bool { return true }

func (a *app) dashboard(ctx context.Context, args []string) error {
	fs := a.flags("dashboard")
	watch := &watchFlag{fallback: a.cfg.Dashboard.Refresh}
	fs.Var(watch, "watch", "keep refreshing, every DASHBOARD_REFRESH or -watch=<interval>")
	metricsAddr := fs.String("metrics-addr", a.cfg.Metrics.Addr, "serve Prometheus metrics on this address")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *metricsAddr != "" {
		stop := a.serveMetrics(*metricsAddr)
		defer stop()
	}

	store := datacache.New(a.api.Users, a.api.Fans, a.api.Content, a.api.Images, a.logger)
	defer store.Dispose()
	dash := service.NewDashboard(nil, a.logger)

	err := store.Init(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, model.ErrDisposed) {
		return err
	}
	if watch.interval == 0 {
		renderReport(a.out, dash.Report(store.Snapshot(), a.now()))
		return err
	}
	return a.watch(ctx, store, dash, watch.interval)
}

// watch re-renders on every settled snapshot until ctx is done.
func (a *app) watch(ctx context.Context, store *datacache.Store, dash *service.Dashboard, interval time.Duration) error {
	updates, unsubscribe := store.Subscribe()
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := store.Poll(gctx, interval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case snap, ok := <-updates:
				if !ok {
					return nil
				}
				if snap.Loading {
					continue
				}
				renderReport(a.out, dash.Report(snap, a.now()))
			}
		}
	})
	return g.Wait()
}

// serveMetrics starts the /metrics listener and returns its shutdown func.
func (a *app) serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := server.NewHTTPServer(mux, addr)

	var sl model.SecurityLayer
	if a.cfg.Metrics.TLS() {
		sl = server.NewTLSListener(a.cfg.Metrics.CertFile, a.cfg.Metrics.KeyFile)
	} else {
		sl = server.NewPlainListener()
	}

	done := make(chan struct{})
	go func(s model.Server) {
		defer close(done)
		a.logger.Info("Starting metrics server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			a.logger.Error("failed to start metrics server", "error", err)
		}
	}(srv)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			a.logger.Error("error during metrics server shutdown", "error", err, "address", srv.Address())
		}
		<-done
	}
}
