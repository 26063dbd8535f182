package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"omsim/adapters/excel"
	"omsim/app"
	"omsim/domain/radon"
	"omsim/internal/errors"
	loglib "omsim/internal/log"
	"omsim/internal/metrics"
	"omsim/ports"
)

func newSimulateCmd(c *cli) *cobra.Command {
	var asJSON bool
	var top int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a sweep of campaigns over a building",
		Long: `Run a sweep of 6+1 campaigns over every room series in a file.

Modes:
  random        six rooms drawn with replacement, random cellar slot and start
  permutations  every order of six distinct rooms, each cellar and slot, capped by --trials

Example: omsim simulate --rooms house.xlsx --trials 5000 --noise 10 --seed 7 --top 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applySimulationFlags(cmd); err != nil {
				return err
			}
			return c.runSimulate(cmd, asJSON, top)
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().String("mode", "", "Sweep mode: random|permutations")
	cmd.Flags().Int("trials", 0, "Number of campaigns to build")
	cmd.Flags().Int("workers", 0, "Parallel workers")
	cmd.Flags().Int("start-step", 0, "Hours between candidate campaign starts")
	cmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics here")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().IntVar(&top, "top", 0, "Print the N campaigns with the highest room mean")
	return cmd
}

// addSimulationFlags registers the flags shared by simulate and campaign
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().String("rooms", "", "Room series file (.xlsx or .csv)")
	cmd.Flags().String("sheet", "", "Worksheet to read, the active sheet by default")
	cmd.Flags().Int("noise", 0, "Noise level in percent")
	cmd.Flags().Int64("seed", 0, "Random seed")
}

// applySimulationFlags copies explicitly set flags over the loaded config.
// Flags a command does not define are never reported as changed.
func (c *cli) applySimulationFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	sim := &c.cfg.Simulation
	if flags.Changed("rooms") {
		c.cfg.Data.RoomsFile, _ = flags.GetString("rooms")
	}
	if flags.Changed("sheet") {
		c.cfg.Data.Sheet, _ = flags.GetString("sheet")
	}
	if flags.Changed("noise") {
		sim.Noise, _ = flags.GetInt("noise")
	}
	if flags.Changed("seed") {
		sim.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("mode") {
		sim.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("trials") {
		sim.Trials, _ = flags.GetInt("trials")
	}
	if flags.Changed("workers") {
		sim.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("start-step") {
		sim.StartStep, _ = flags.GetInt("start-step")
	}
	if flags.Changed("metrics-file") {
		c.cfg.Metrics.File, _ = flags.GetString("metrics-file")
	}
	return c.cfg.Validate()
}

func (c *cli) readBuilding() (*radon.Building, error) {
	if c.cfg.Data.RoomsFile == "" {
		return nil, errors.ConfigInvalid("no room series file: set --rooms or OMSIM_ROOMS_FILE")
	}
	var source ports.BuildingSource = excel.NewSeriesReader(c.cfg.Data.RoomsFile,
		excel.WithSheet(c.cfg.Data.Sheet),
		excel.WithLogger(c.logger),
	)
	return source.ReadBuilding()
}

func (c *cli) runSimulate(cmd *cobra.Command, asJSON bool, top int) error {
	b, err := c.readBuilding()
	if err != nil {
		return err
	}

	var collector metrics.Collector = metrics.NewNop()
	var prom *metrics.PrometheusCollector
	if c.cfg.Metrics.File != "" {
		prom = metrics.NewPrometheus("")
		collector = prom
	}

	svc := app.NewSimulationService(c.logger, collector)
	result, err := svc.Run(cmd.Context(), app.RequestFromConfig(b, c.cfg.Simulation))
	if err != nil {
		return err
	}

	if prom != nil {
		if err := prom.WriteTextfile(c.cfg.Metrics.File); err != nil {
			c.logger.Error(err, "metrics export failed", loglib.Fields{"file": c.cfg.Metrics.File})
		}
	}

	if asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Summary())
	}
	c.printSummary(result.Summary())
	for i, camp := range result.Ranked() {
		if i == top {
			break
		}
		fmt.Fprintf(c.out, "%3d. %s\n", i+1, camp)
	}
	return nil
}

func (c *cli) printSummary(s app.Summary) {
	fmt.Fprintf(c.out, "Run:        %s\n", s.RunID)
	fmt.Fprintf(c.out, "Building:   %s\n", s.Building)
	fmt.Fprintf(c.out, "Mode:       %s\n", s.Mode)
	fmt.Fprintf(c.out, "Campaigns:  %d built, %d failed, %d degenerate\n", s.Built, s.Failed, s.Degenerate)

	types := make([]string, 0, len(s.Types))
	for name := range s.Types {
		types = append(types, name)
	}
	sort.Strings(types)
	for _, name := range types {
		fmt.Fprintf(c.out, "  type %-6s %d\n", name, s.Types[name])
	}

	printDistribution := func(label string, d app.Distribution) {
		fmt.Fprintf(c.out, "%-11s mean=%.1f min=%.1f q05=%.1f q50=%.1f q95=%.1f max=%.1f\n",
			label, d.Mean, d.Min, d.Q05, d.Q50, d.Q95, d.Max)
	}
	printDistribution("Room AM:", s.RoomAverages)
	printDistribution("Cellar AM:", s.CellarAverages)
	fmt.Fprintf(c.out, "%-11s q05=%.3f q50=%.3f q95=%.3f\n", "Ratio R/C:", s.Ratio.Q05, s.Ratio.Q50, s.Ratio.Q95)
	fmt.Fprintf(c.out, "Duration:   %dms\n", s.DurationMs)
}
