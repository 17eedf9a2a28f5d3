package main

import (
	"os"
	"strings"

	"github.com/matsen/chronos/internal/article"
	"github.com/matsen/chronos/internal/concept"
	"github.com/matsen/chronos/internal/config"
	"github.com/matsen/chronos/internal/graph"
	"github.com/matsen/chronos/internal/render"
	"github.com/matsen/chronos/internal/view"
	"github.com/spf13/cobra"
)

var (
	graphObservationID string
	graphStudyID       string
	graphOut           string
	graphWidth         float64
	graphHeight        float64
	graphScale         float64
	graphSynonyms      string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the relationship graph for stored records",
	Long: `Build the relationship graph connecting a historical observation with a
modern study. Either record may be omitted; the graph covers whatever is
present. A stored hypothesis linking the pair is included automatically.

Outputs the graph as JSON, or renders it with --out: an .html path gets a
self-contained interactive page, anything else a static SVG.

Examples:
  chronos graph --observation hist-4f2a... --study mod-9c1b...
  chronos graph --observation hist-4f2a... --study mod-9c1b... --out graph.html
  chronos graph --study mod-9c1b... --out graph.svg --scale 1.5`,
	Args: cobra.NoArgs,
	Run:  runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphObservationID, "observation", "", "Stored observation ID")
	graphCmd.Flags().StringVar(&graphStudyID, "study", "", "Stored study ID")
	graphCmd.Flags().StringVar(&graphOut, "out", "", "Write a rendering to this path (.html for interactive, else SVG)")
	graphCmd.Flags().Float64Var(&graphWidth, "width", 900, "SVG canvas width")
	graphCmd.Flags().Float64Var(&graphHeight, "height", 600, "SVG canvas height")
	graphCmd.Flags().Float64Var(&graphScale, "scale", 1, "Zoom scale for SVG rendering")
	graphCmd.Flags().StringVar(&graphSynonyms, "synonyms", "", "Path to a custom synonym table (YAML)")
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) {
	if graphObservationID == "" && graphStudyID == "" {
		exitWithError(ExitError, "at least one of --observation or --study is required")
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	var early, late *article.Article
	if graphObservationID != "" {
		obs, err := db.GetObservation(graphObservationID)
		if err != nil {
			exitWithError(ExitError, "loading observation: %v", err)
		}
		if obs == nil {
			exitWithError(ExitNotFound, "observation %s not found", graphObservationID)
		}
		early = observationAsDocument(obs)
	}
	if graphStudyID != "" {
		study, err := db.GetStudy(graphStudyID)
		if err != nil {
			exitWithError(ExitError, "loading study: %v", err)
		}
		if study == nil {
			exitWithError(ExitNotFound, "study %s not found", graphStudyID)
		}
		late = study
	}

	var hyp *article.Hypothesis
	if graphObservationID != "" && graphStudyID != "" {
		link, err := db.GetHypothesisForPair(graphObservationID, graphStudyID)
		if err != nil {
			exitWithError(ExitError, "loading hypothesis: %v", err)
		}
		if link != nil {
			hyp = &article.Hypothesis{
				Text:     link.Text,
				Evidence: []string{link.ObservationID, link.StudyID},
			}
		}
	}

	table := loadSynonymTable(cfg)
	g := graph.Build(early, late, hyp, table)

	if graphOut != "" {
		if strings.HasSuffix(graphOut, ".html") {
			writeHTML(g)
		} else {
			writeSVG(g)
		}
	}
	if humanOutput {
		outputHuman("Graph: %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
		if graphOut != "" {
			outputHuman("Wrote %s\n", graphOut)
		}
		return
	}
	outputJSON(g)
}

// observationAsDocument presents a stored observation as a source document
// for concept extraction: the text becomes the abstract, the record
// identifier the title.
func observationAsDocument(obs *article.Observation) *article.Article {
	return &article.Article{
		Title:    obs.SourceID,
		Abstract: obs.Text,
	}
}

// loadSynonymTable resolves the synonym table: --synonyms flag, then the
// configured path, then the built-in table.
func loadSynonymTable(cfg *config.GlobalConfig) *concept.Table {
	path := graphSynonyms
	if path == "" {
		path = cfg.SynonymsPath
	}
	if path == "" {
		return concept.DefaultTable()
	}

	table, err := concept.LoadTable(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading synonym table: %v", err)
	}
	return table
}

func writeSVG(g *graph.Graph) {
	scale := graphScale
	if scale < view.MinScale {
		scale = view.MinScale
	}
	if scale > view.MaxScale {
		scale = view.MaxScale
	}

	canvas := render.NewSVGCanvas(graphWidth, graphHeight)
	render.Draw(canvas, g, scale, graph.Point{}, "")

	if err := os.WriteFile(graphOut, []byte(canvas.String()), 0644); err != nil {
		exitWithError(ExitError, "writing SVG: %v", err)
	}
}

func writeHTML(g *graph.Graph) {
	page, err := render.GenerateHTML(g)
	if err != nil {
		exitWithError(ExitError, "rendering HTML: %v", err)
	}
	if err := os.WriteFile(graphOut, []byte(page), 0644); err != nil {
		exitWithError(ExitError, "writing HTML: %v", err)
	}
}
