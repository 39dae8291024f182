package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/c360studio/scholargraph/populate"
	"github.com/c360studio/scholargraph/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// runMetrics counts watch-mode runs.
type runMetrics struct {
	runs        *prometheus.CounterVec
	lastSuccess prometheus.Gauge
	nodes       prometheus.Gauge
}

func newRunMetrics(reg prometheus.Registerer) *runMetrics {
	m := &runMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scholargraph",
			Name:      "runs_total",
			Help:      "Population runs by result.",
		}, []string{"result"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scholargraph",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scholargraph",
			Name:      "graph_nodes",
			Help:      "Nodes in the last populated graph.",
		}),
	}
	reg.MustRegister(m.runs, m.lastSuccess, m.nodes)
	return m
}

// Watch populates once, then again whenever an input file changes. Runs are
// spaced at least Watch.MinInterval apart and a failed run does not stop
// the loop.
func (a *App) Watch(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	a.SetMetrics(populate.NewMetrics(reg))
	rm := newRunMetrics(reg)

	if a.cfg.Metrics.Addr != "" {
		srv := a.serveMetrics(reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	watcher, err := source.NewInputWatcher(a.cfg.Input.Dir, a.cfg.Watch.Debounce, []string{".csv"}, a.logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	limiter := rate.NewLimiter(rate.Every(a.cfg.Watch.MinInterval), 1)
	a.runOnce(ctx, rm)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped")
			return nil
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			a.logger.Info("Input changed", "path", ev.Path, "op", ev.Operation)
			if err := limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			drain(watcher.Events())
			a.runOnce(ctx, rm)
		}
	}
}

func (a *App) runOnce(ctx context.Context, rm *runMetrics) {
	g, err := a.Populate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		rm.runs.WithLabelValues("error").Inc()
		a.logger.Error("Population failed", "error", err)
		return
	}
	rm.runs.WithLabelValues("ok").Inc()
	rm.lastSuccess.SetToCurrentTime()
	rm.nodes.Set(float64(g.Len()))
}

// drain discards queued events; the next run reads every input anyway.
func drain(events <-chan source.WatchEvent) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (a *App) serveMetrics(reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()
	a.logger.Info("Serving metrics", "addr", a.cfg.Metrics.Addr)
	return srv
}
