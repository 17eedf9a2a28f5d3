package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show record counts for the local database",
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	counts, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting records: %v", err)
	}

	if humanOutput {
		outputHuman("Observations: %d\nStudies:      %d\nHypotheses:   %d\n",
			counts.Observations, counts.Studies, counts.Hypotheses)
		return
	}
	outputJSON(counts)
}
