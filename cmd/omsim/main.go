package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"omsim/internal/config"
	"omsim/internal/errors"
	loglib "omsim/internal/log"
	"omsim/internal/log/zerolog"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries the configuration and logger shared by all commands
type cli struct {
	out     io.Writer
	envFile string
	cfg     *config.Config
	logger  loglib.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	rootCmd := &cobra.Command{
		Use:   "omsim",
		Short: "Simulate 6+1 radon measurement campaigns from recorded room series",
		Long: `omsim builds synthetic 6+1 campaigns (six room days and one cellar day)
from hourly radon series and reports campaign statistics.

Settings are read from OMSIM_* environment variables, optionally loaded from
a .env file; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "Environment file to load before reading OMSIM_* variables")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Human readable console logs")

	rootCmd.AddCommand(
		newSimulateCmd(c),
		newCampaignCmd(c),
		newGenerateCmd(c),
		newExportCmd(c),
	)
	return rootCmd
}

// setup loads the environment, applies flag overrides and builds the logger
func (c *cli) setup(cmd *cobra.Command) error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to load %s", c.envFile)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-pretty") {
		cfg.Log.Pretty, _ = flags.GetBool("log-pretty")
	}
	c.cfg = cfg
	c.logger = zerolog.NewLogger(&zerolog.Config{
		LogLevel: cfg.Log.Level,
		Pretty:   cfg.Log.Pretty,
	})
	return nil
}
