package main

import (
	"context"
	"errors"

	"github.com/matsen/chronos/internal/hypothesis"
	"github.com/spf13/cobra"
)

var hypothesisCmd = &cobra.Command{
	Use:   "hypothesis <observation-id> <study-id>",
	Short: "Generate a hypothesis linking an observation to a study",
	Long: `Generate a testable hypothesis connecting a stored historical
observation with a stored modern study, and save the link.

Examples:
  chronos hypothesis hist-4f2a... mod-9c1b...
  chronos hypothesis hist-4f2a... mod-9c1b... --human`,
	Args: cobra.ExactArgs(2),
	Run:  runHypothesis,
}

func init() {
	rootCmd.AddCommand(hypothesisCmd)
}

func runHypothesis(cmd *cobra.Command, args []string) {
	observationID, studyID := args[0], args[1]

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	obs, err := db.GetObservation(observationID)
	if err != nil {
		exitWithError(ExitError, "loading observation: %v", err)
	}
	if obs == nil {
		exitWithError(ExitNotFound, "observation %s not found", observationID)
	}

	study, err := db.GetStudy(studyID)
	if err != nil {
		exitWithError(ExitError, "loading study: %v", err)
	}
	if study == nil {
		exitWithError(ExitNotFound, "study %s not found", studyID)
	}

	client := hypothesis.NewClient(
		hypothesis.WithAPIKey(cfg.LLMAPIKey),
		hypothesis.WithAPIURL(cfg.LLMAPIURL),
		hypothesis.WithModel(cfg.LLMModel),
	)

	hyp, err := client.Generate(context.Background(), obs, study)
	if err != nil {
		if errors.Is(err, hypothesis.ErrNotConfigured) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitAPIError, "generating hypothesis: %v", err)
	}

	id, err := db.SaveHypothesis(observationID, studyID, hyp.Text)
	if err != nil {
		exitWithError(ExitDataError, "saving hypothesis: %v", err)
	}

	if humanOutput {
		outputHuman("Stored hypothesis %s\n  %s\n", id, wrapText(hyp.Text, TextWrapWidth, "  "))
		return
	}
	outputJSON(SavedResponse{Status: "stored", ID: id, Text: hyp.Text})
}
