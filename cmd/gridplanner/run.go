package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"grid-planner/planner"
)

type runOptions struct {
	algorithm    string
	tick         time.Duration
	stepsPerTick int
	quiet        bool
	exportPath   string
	simplify     float64
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate one planning run in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("algorithm") {
				opts.algorithm = cfg.Run.Algorithm
			}
			if !cmd.Flags().Changed("tick") {
				opts.tick = cfg.Run.Tick
			}
			alg, err := planner.ParseAlgorithm(opts.algorithm)
			if err != nil {
				return err
			}
			c, err := newController(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runAnimated(ctx, c, alg, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "astar", "astar, dijkstra or rrt")
	cmd.Flags().DurationVar(&opts.tick, "tick", 30*time.Millisecond, "delay between frames; 0 runs without animation")
	cmd.Flags().IntVar(&opts.stepsPerTick, "steps-per-tick", 1, "steps advanced per frame")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the final frame")
	cmd.Flags().StringVar(&opts.exportPath, "export", "", "write the final state as GeoJSON to this file")
	cmd.Flags().Float64Var(&opts.simplify, "simplify", 0.5, "Douglas-Peucker tolerance for the exported simplified path")
	return cmd
}

// runAnimated is the external tick source: it advances the controller on a
// ticker and draws a frame after each tick. Interrupting cancels the session.
func runAnimated(ctx context.Context, c *planner.Controller, alg planner.Algorithm, opts *runOptions, out io.Writer) error {
	if err := c.Start(alg); err != nil {
		return err
	}
	log.Printf("Running %s\n", alg)

	var ticks <-chan time.Time
	if opts.tick > 0 {
		ticker := time.NewTicker(opts.tick)
		defer ticker.Stop()
		ticks = ticker.C
	}
	steps := max(1, opts.stepsPerTick)

	for c.Status() == planner.Running {
		if ticks != nil {
			select {
			case <-ctx.Done():
				c.Cancel()
				continue
			case <-ticks:
			}
		} else if ctx.Err() != nil {
			c.Cancel()
			continue
		}
		for i := 0; i < steps && c.AdvanceOneStep(); i++ {
		}
		if !opts.quiet && ticks != nil {
			fmt.Fprint(out, "\033[H\033[2J", renderASCII(c.Grid(), c.Snapshot()))
		}
	}

	snap := c.Snapshot()
	fmt.Fprint(out, renderASCII(c.Grid(), snap))
	fmt.Fprintf(out, "%s: %s after %d steps, explored %d, path %d cells, cost %.3f\n",
		snap.Algorithm, snap.Status, snap.Steps, snap.ExploredCount, len(snap.Path), snap.Cost)

	if opts.exportPath != "" {
		data, err := planner.ExportGeoJSON(c.Grid(), snap, opts.simplify)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.exportPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		log.Printf("Exported %s (%d bytes)\n", opts.exportPath, len(data))
	}
	return nil
}
