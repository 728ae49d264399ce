package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/api"
	"github.com/docdex/docdex/internal/pipeline"
	"github.com/docdex/docdex/internal/watch"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <directory>",
		Short: "Serve the generated index over HTTP",
		Long: `serve builds the index once, keeps the result in memory, and exposes it
over HTTP: the rendered Markdown, the parsed documents as JSON, rebuild
timing stats, and a rebuild trigger. With --watch it also rebuilds
whenever a Markdown file under the directory changes.

Set DOCDEX_API_KEY (or serve.api_key in docdex.yml) to require a Bearer
token on the /api routes; /health stays open either way.`,
		Args: cobra.ArbitraryArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :8090)")
	cmd.Flags().Bool("watch", false, "rebuild when Markdown files change")
	cmd.Flags().Duration("debounce", 0, "settle time between a change and the rebuild (default 500ms)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	dir, err := resolveDir(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd, dir)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr, _ = f.GetString("addr")
	}
	if f.Changed("watch") {
		cfg.Watch, _ = f.GetBool("watch")
	}
	if f.Changed("debounce") {
		cfg.Debounce, _ = f.GetDuration("debounce")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	pipe := pipeline.New(pipeline.Config{
		Root:     dir,
		Out:      cfg.Out,
		Workers:  cfg.Workers,
		Excludes: cfg.Excludes,
	}, log)
	stats := pipeline.NewRunStats(cfg.StatsWindow)
	srv := api.NewServer(pipe, stats, log, cfg.APIKey)

	// Build once before accepting traffic so /api/index never starts
	// empty.
	if _, err := srv.Rebuild(ctx); err != nil {
		return err
	}

	var watcher *watch.Watcher
	if cfg.Watch {
		outAbs, err := pipe.Out()
		if err != nil {
			return err
		}
		watcher, err = watch.New(dir, watch.Config{
			Debounce:   cfg.Debounce,
			Excludes:   cfg.Excludes,
			IgnorePath: outAbs,
		}, log)
		if err != nil {
			return err
		}
		watcher.Start()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-watcher.Changes():
					if !ok {
						return
					}
					if _, err := srv.Rebuild(ctx); err != nil {
						log.Error("rebuild after change failed", "error", err)
					}
				}
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		log.Info("shutting down...")

		if watcher != nil {
			watcher.Close()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docdex", "addr", cfg.Addr, "root", dir, "watch", cfg.Watch)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
