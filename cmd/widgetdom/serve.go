package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/widgetdom/pkg/devtools"
	"github.com/vango-dev/widgetdom/pkg/dom"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		addr string
		tick time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the devtools inspector for the demo tree",
		Long: `Build the demo tree and serve the devtools inspector until
interrupted. Every --tick the demo greeting is rewritten, so /ws
clients see a steady stream of mutations. --tick=0 keeps the tree
still.

Endpoints:
  /registry   registered elements
  /mutations  recent mutation records
  /metrics    Prometheus metrics
  /ws         live mutation stream

Examples:
  widgetdom serve
  widgetdom serve --addr=:7070
  widgetdom serve --tick=0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				g.cfg.Devtools.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return g.serve(ctx, tick)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().DurationVar(&tick, "tick", 2*time.Second, "Interval between demo mutations (0 disables)")

	return cmd
}

func (g *globals) serve(ctx context.Context, tick time.Duration) error {
	// The inspector always serves /metrics.
	g.cfg.Metrics.Enabled = true
	promReg := prometheus.NewRegistry()
	hub := devtools.NewHub(g.cfg.Devtools.History)

	doc, err := g.newDocument(promReg, hub)
	if err != nil {
		return err
	}
	root, err := buildDemo(doc)
	if err != nil {
		return err
	}

	reg := doc.Registry()
	srv := devtools.NewServer(g.cfg.Devtools.Addr, hub, reg,
		devtools.WithGatherer(promReg),
		devtools.WithLogger(g.logger),
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Run(egCtx)
	})
	if tick > 0 {
		eg.Go(func() error {
			tickDemo(egCtx, root, tick)
			return nil
		})
	}
	return eg.Wait()
}

// tickDemo rewrites the demo greeting every interval until ctx is done.
// It is the only writer of the tree once serving starts.
func tickDemo(ctx context.Context, root *dom.Root, every time.Duration) {
	greeting := demoGreeting(root)
	if greeting == nil {
		return
	}
	base := greeting.Text()

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			greeting.SetText(fmt.Sprintf("%s #%d", base, n))
		}
	}
}
