package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matsen/chronos/internal/article"
	"github.com/matsen/chronos/internal/pubmed"
	"github.com/matsen/chronos/internal/scan"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Store records in the local database",
}

var ingestStudyCmd = &cobra.Command{
	Use:   "study <pmid>",
	Short: "Fetch a PubMed study by PMID and store it",
	Long: `Fetch a modern study from PubMed by PMID and store it locally.

Examples:
  chronos ingest study 12345678
  chronos ingest study 12345678 --human`,
	Args: cobra.ExactArgs(1),
	Run:  runIngestStudy,
}

var (
	observationText   string
	observationSource string
	observationScan   string
)

var ingestObservationCmd = &cobra.Command{
	Use:   "observation",
	Short: "Store a historical observation",
	Long: `Store a historical observation, either from literal text or extracted
from a scanned source document (PDF).

Examples:
  chronos ingest observation --text "Patients on bed rest developed leg swelling." --source ward-ledger-1895
  chronos ingest observation --scan old-casebook.pdf
  chronos ingest observation --scan old-casebook.pdf --source casebook-vol2`,
	Args: cobra.NoArgs,
	Run:  runIngestObservation,
}

func init() {
	ingestObservationCmd.Flags().StringVar(&observationText, "text", "", "Observation text")
	ingestObservationCmd.Flags().StringVar(&observationSource, "source", "", "Identifier of the originating record")
	ingestObservationCmd.Flags().StringVar(&observationScan, "scan", "", "Path to a scanned PDF to extract text from")

	ingestCmd.AddCommand(ingestStudyCmd)
	ingestCmd.AddCommand(ingestObservationCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestStudy(cmd *cobra.Command, args []string) {
	pmid := strings.TrimSpace(args[0])
	if pmid == "" {
		exitWithError(ExitError, "PMID cannot be empty")
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	existing, existingID, err := db.GetStudyByPMID(pmid)
	if err != nil {
		exitWithError(ExitError, "checking for existing study: %v", err)
	}
	if existing != nil {
		if humanOutput {
			outputHuman("Study already stored as %s\n  %s\n", existingID, existing.Title)
			return
		}
		outputJSON(SavedResponse{Status: "exists", ID: existingID, Text: existing.Title})
		return
	}

	client := pubmed.NewClient(pubmed.WithAPIKey(cfg.PubMedAPIKey))

	articles, err := client.Fetch(context.Background(), []string{pmid})
	if err != nil {
		exitWithError(ExitAPIError, "fetching study: %v", err)
	}
	if len(articles) == 0 {
		exitWithError(ExitNotFound, "no PubMed record for PMID %s", pmid)
	}

	id, err := db.SaveStudy(&articles[0])
	if err != nil {
		exitWithError(ExitDataError, "saving study: %v", err)
	}

	if humanOutput {
		outputHuman("Stored study %s\n  %s\n", id, articles[0].Title)
		return
	}
	outputJSON(SavedResponse{Status: "stored", ID: id, Text: articles[0].Title})
}

func runIngestObservation(cmd *cobra.Command, args []string) {
	if observationText == "" && observationScan == "" {
		exitWithError(ExitError, "either --text or --scan is required")
	}
	if observationText != "" && observationScan != "" {
		exitWithError(ExitError, "--text and --scan are mutually exclusive")
	}

	text := observationText
	source := observationSource
	doi := ""
	if observationScan != "" {
		extracted, err := scan.ExtractText(observationScan)
		if err != nil {
			exitWithError(ExitDataError, "extracting text: %v", err)
		}
		text = extracted
		if source == "" {
			source = filepath.Base(observationScan)
		}
		// Best effort: a missing or unreadable DOI never blocks ingestion.
		doi, _ = scan.ExtractDOI(observationScan)
	}
	if source == "" {
		exitWithError(ExitError, "--source is required with --text")
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	obs := &article.Observation{Text: text, SourceID: source, DOI: doi}
	id, err := db.SaveObservation(obs)
	if err != nil {
		exitWithError(ExitDataError, "saving observation: %v", err)
	}

	if humanOutput {
		outputHuman("Stored observation %s\n", id)
		if doi != "" {
			outputHuman("  DOI: %s\n", doi)
		}
		outputHuman("  %s\n", wrapText(text, TextWrapWidth, "  "))
		return
	}
	outputJSON(SavedResponse{Status: "stored", ID: id, Text: text, DOI: doi})
}
