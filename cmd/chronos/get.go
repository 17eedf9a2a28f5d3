package main

import (
	"strings"

	"github.com/matsen/chronos/internal/article"
	"github.com/matsen/chronos/internal/storage"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a stored record by ID",
	Long: `Show a stored record by ID. The prefix selects the record class:
hist- for observations, mod- for studies, hyp- for hypotheses.

Examples:
  chronos get hist-4f2a...
  chronos get mod-9c1b... --human`,
	Args: cobra.ExactArgs(1),
	Run:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	id := args[0]

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	switch {
	case strings.HasPrefix(id, storage.ObservationPrefix):
		obs, err := db.GetObservation(id)
		if err != nil {
			exitWithError(ExitError, "loading observation: %v", err)
		}
		if obs == nil {
			exitWithError(ExitNotFound, "observation %s not found", id)
		}
		printObservation(obs)

	case strings.HasPrefix(id, storage.StudyPrefix):
		study, err := db.GetStudy(id)
		if err != nil {
			exitWithError(ExitError, "loading study: %v", err)
		}
		if study == nil {
			exitWithError(ExitNotFound, "study %s not found", id)
		}
		printStudy(study)

	case strings.HasPrefix(id, storage.HypothesisPrefix):
		hyp, err := db.GetHypothesis(id)
		if err != nil {
			exitWithError(ExitError, "loading hypothesis: %v", err)
		}
		if hyp == nil {
			exitWithError(ExitNotFound, "hypothesis %s not found", id)
		}
		printHypothesis(hyp)

	default:
		exitWithError(ExitError, "unrecognized ID prefix: %s", id)
	}
}

func printObservation(obs *article.Observation) {
	if humanOutput {
		outputHuman("%s\n  Source: %s\n", obs.ID, obs.SourceID)
		if obs.DOI != "" {
			outputHuman("  DOI: %s\n", obs.DOI)
		}
		outputHuman("  %s\n", wrapText(obs.Text, TextWrapWidth, "  "))
		return
	}
	outputJSON(obs)
}

func printStudy(study *article.Article) {
	if humanOutput {
		outputHuman("[%s] %s\n  %s\n", study.PMID, study.Title, article.FormatAuthors(study.Authors, 3))
		if study.Journal != "" || study.PublicationDate != "" {
			outputHuman("  %s %s\n", study.Journal, study.PublicationDate)
		}
		if study.Abstract != "" {
			outputHuman("  %s\n", wrapText(study.Abstract, TextWrapWidth, "  "))
		}
		return
	}
	outputJSON(study)
}

func printHypothesis(hyp *storage.HypothesisLink) {
	if humanOutput {
		outputHuman("%s\n  Links: %s -> %s\n  %s\n", hyp.ID, hyp.ObservationID, hyp.StudyID,
			wrapText(hyp.Text, TextWrapWidth, "  "))
		return
	}
	outputJSON(hyp)
}
