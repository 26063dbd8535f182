package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"omsim/domain/campaign"
	"omsim/domain/radon"
	"omsim/domain/stats"
)

func newCampaignCmd(c *cli) *cobra.Command {
	var start int
	var chain bool

	cmd := &cobra.Command{
		Use:   "campaign [assignment]",
		Short: "Build and report a single campaign",
		Long: `Build one campaign from a comma separated list of seven room ids in day
order, exactly one of them a cellar.

Example: omsim campaign R1,R2,C1,R3,R4,R5,R6 --rooms house.xlsx --start 48 --noise 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applySimulationFlags(cmd); err != nil {
				return err
			}
			b, err := c.readBuilding()
			if err != nil {
				return err
			}
			assignment, err := radon.ParseAssignment(args[0], b)
			if err != nil {
				return err
			}

			builder := campaign.NewBuilder(
				campaign.WithNoiseSource(campaign.NewSeededSource(c.cfg.Simulation.Seed)),
				campaign.WithLogger(c.logger),
			)
			camp, err := builder.Construct(start, assignment, c.cfg.Simulation.Noise)
			if err != nil {
				return err
			}
			c.printCampaign(camp, chain)
			return nil
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().IntVar(&start, "start", 0, "Hour offset into the series")
	cmd.Flags().BoolVar(&chain, "chain", false, "Also print the 168 hourly values in day order")
	return cmd
}

func (c *cli) printCampaign(camp *campaign.Campaign, chain bool) {
	fmt.Fprintln(c.out, camp)
	fmt.Fprintf(c.out, "Type:     %s\n", camp.Type())
	if w := camp.Warning(); w != nil {
		fmt.Fprintf(c.out, "Warning:  %v\n", w)
	}
	fmt.Fprintf(c.out, "%-10s %10s %10s\n", "", "rooms", "cellar")
	rows := []struct {
		label string
		value func(stats.Summary) float64
	}{
		{"AM", func(s stats.Summary) float64 { return s.Average }},
		{"GM", func(s stats.Summary) float64 { return s.LogAverage }},
		{"SD", func(s stats.Summary) float64 { return s.Deviation }},
		{"GSD", func(s stats.Summary) float64 { return s.LogDeviation }},
		{"CV", func(s stats.Summary) float64 { return s.VarCoefficient }},
		{"MIN", func(s stats.Summary) float64 { return s.Minimum }},
		{"Q05", func(s stats.Summary) float64 { return s.Quantile05 }},
		{"Q50", func(s stats.Summary) float64 { return s.Median }},
		{"Q95", func(s stats.Summary) float64 { return s.Quantile95 }},
		{"MAX", func(s stats.Summary) float64 { return s.Maximum }},
		{"QDEV", func(s stats.Summary) float64 { return s.QuantileDeviation }},
		{"RQDEV", func(s stats.Summary) float64 { return s.RelativeQuantileDeviation }},
	}
	room, cellar := camp.RoomStats(), camp.CellarStats()
	for _, r := range rows {
		fmt.Fprintf(c.out, "%-10s %10.2f %10.2f\n", r.label, r.value(room), r.value(cellar))
	}

	if chain {
		values := camp.ValueChain()
		for day := 0; day < radon.SlotCount; day++ {
			parts := make([]string, campaign.HoursPerDay)
			for h := range parts {
				parts[h] = strconv.FormatFloat(values[day*campaign.HoursPerDay+h], 'f', -1, 64)
			}
			fmt.Fprintf(c.out, "day %d: %s\n", day+1, strings.Join(parts, " "))
		}
	}
}
