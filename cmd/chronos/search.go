package main

import (
	"context"
	"errors"
	"strings"

	"github.com/matsen/chronos/internal/pubmed"
	"github.com/spf13/cobra"
)

var (
	searchPage    int
	searchPerPage int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search PubMed for modern studies",
	Long: `Search PubMed for modern studies matching a query.

Examples:
  chronos search "deep vein thrombosis"
  chronos search "tuberculosis treatment" --page 2 --per-page 20
  chronos search scurvy --human`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Result page (starts at 1)")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", DefaultSearchPerPage, "Results per page")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(args[0])
	if query == "" {
		exitWithError(ExitError, "query cannot be empty")
	}

	cfg := mustLoadConfig()
	client := pubmed.NewClient(pubmed.WithAPIKey(cfg.PubMedAPIKey))

	articles, err := client.Search(context.Background(), query, searchPage, searchPerPage)
	if err != nil {
		code := ExitAPIError
		if errors.Is(err, pubmed.ErrInvalidResponse) {
			code = ExitDataError
		}
		exitWithError(code, "searching PubMed: %v", err)
	}

	if humanOutput {
		if len(articles) == 0 {
			outputHuman("No results for %q (page %d)\n", query, searchPage)
			return
		}
		printArticlesHuman(articles)
		return
	}

	outputJSON(articles)
}
