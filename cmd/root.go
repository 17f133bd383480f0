package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-metrics/internal/config"
	"github.com/pable/go-ipl-metrics/internal/logging"
)

var (
	dbPath     string
	jsonOutput bool

	cfg    *config.Config
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "iplmetrics",
	Short: "IPL match and delivery metrics tool",
	Long: `Load IPL matches.csv and deliveries.csv into a local SQLite database and
compute season statistics: matches per year, team wins, extras conceded,
economical bowlers and matches played vs won.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default $IPL_DB_PATH or ~/.iplmetrics/ipl.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as a JSON envelope")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(matchesPerYearCmd)
	rootCmd.AddCommand(teamWinsCmd)
	rootCmd.AddCommand(extraRunsCmd)
	rootCmd.AddCommand(economicalBowlersCmd)
	rootCmd.AddCommand(playedVsWonCmd)
	rootCmd.AddCommand(yearsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// setup loads configuration and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	logger = logging.New(cfg.LogFormat, cfg.Level())
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	return nil
}
