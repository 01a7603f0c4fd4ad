// Command gridplanner animates the grid planner in a terminal or serves it
// over a JSON HTTP API for a browser renderer.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"grid-planner/internal/config"
	"grid-planner/planner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "gridplanner",
		Short:        "Step-by-step A*, Dijkstra and RRT on an occupancy grid",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.AddCommand(newRunCmd(opts), newServeCmd(opts))
	return cmd
}

// loadConfig reads the config file, or the defaults when none is given.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadWithDefaults(o.configPath)
}

// newController builds a controller from cfg, logging through slog at the
// configured level.
func newController(cfg *config.Config) (*planner.Controller, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	layout, err := cfg.ResolveLayout()
	if err != nil {
		return nil, err
	}
	c, err := planner.NewController(layout, planner.WithLogger(logger), planner.WithRRTConfig(cfg.RRT))
	if err != nil {
		return nil, err
	}
	log.Printf("Grid: %dx%d, start (%d,%d), goal (%d,%d), %d obstacles\n",
		layout.Width, layout.Height,
		layout.Start.X, layout.Start.Y, layout.Goal.X, layout.Goal.Y,
		len(c.Grid().Obstacles()))
	return c, nil
}
