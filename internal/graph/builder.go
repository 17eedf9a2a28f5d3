package graph

import (
	"fmt"

	"github.com/matsen/chronos/internal/article"
	"github.com/matsen/chronos/internal/concept"
)

// Fixed layout anchors in graph space. Positions are assigned once at
// construction and never re-optimized; the viewport transform handles all
// subsequent movement.
const (
	earlyAnchorX = 150.0
	lateAnchorX  = 650.0
	sourceRowY   = 300.0

	conceptRowY        = 150.0
	conceptSpacing     = 70.0
	earlyConceptStartX = 60.0
	lateConceptStartX  = 480.0

	connectionNodeY = 470.0
)

// Edge strengths by relationship.
const (
	containmentStrength    = 0.7
	crossRefStrength       = 0.6
	directLinkStrength     = 0.5 // Source-to-source without a hypothesis
	hypothesisLinkStrength = 0.9 // Source-to-source with a hypothesis
	connectionSpokeWeight  = 0.8 // Source-to-connection-node spokes
)

// Build assembles the relationship graph for the given records. Either
// source article may be nil: the builder produces the largest graph
// consistent with what is present and never fails. Cross-document elements
// (the direct link, cross-reference edges, and the connection node) appear
// only when both sources are present. A nil table falls back to the built-in
// synonym table.
func Build(early, late *article.Article, hyp *article.Hypothesis, table *concept.Table) *Graph {
	if table == nil {
		table = concept.DefaultTable()
	}

	g := &Graph{}

	earlyConcepts := addSourceSubgraph(g, early, KindSourceEarly, earlyAnchorX, earlyConceptStartX)
	lateConcepts := addSourceSubgraph(g, late, KindSourceLate, lateAnchorX, lateConceptStartX)

	if early == nil || late == nil {
		return g
	}

	// Direct source-to-source link; a hypothesis strengthens it.
	direct := Edge{
		From:     string(KindSourceEarly),
		To:       string(KindSourceLate),
		Strength: directLinkStrength,
		Kind:     EdgeConnection,
		Label:    "potential connection",
	}
	if hyp != nil {
		direct.Strength = hypothesisLinkStrength
		direct.Label = "hypothesis generated"
	}
	g.Edges = append(g.Edges, direct)

	// Every cross-document concept pair is considered; related pairs get a
	// cross-reference edge. Bounded by the extraction cap, so at most 4x4.
	for _, ec := range earlyConcepts {
		for _, lc := range lateConcepts {
			if table.Related(ec.term, lc.term) {
				g.Edges = append(g.Edges, Edge{
					From:     ec.id,
					To:       lc.id,
					Strength: crossRefStrength,
					Kind:     EdgeCrossReference,
					Label:    "related concept",
				})
			}
		}
	}

	if hyp != nil {
		addConnectionNode(g, hyp)
	}

	return g
}

type placedConcept struct {
	id   string
	term string
}

// addSourceSubgraph adds one source node plus its concept nodes and
// containment edges. Returns the placed concepts for cross-referencing.
// A nil article contributes nothing.
func addSourceSubgraph(g *Graph, a *article.Article, kind NodeKind, anchorX, conceptStartX float64) []placedConcept {
	if a == nil {
		return nil
	}

	sourceID := string(kind)
	g.Nodes = append(g.Nodes, Node{
		ID:    sourceID,
		Label: truncateLabel(a.Title),
		Kind:  kind,
		Pos:   Point{X: anchorX, Y: sourceRowY},
		Data:  ArticlePayload{Article: a},
	})

	var placed []placedConcept
	for i, term := range concept.Extract(a) {
		conceptID := fmt.Sprintf("%s-concept-%d", kind, i)
		g.Nodes = append(g.Nodes, Node{
			ID:    conceptID,
			Label: truncateLabel(term),
			Kind:  KindConcept,
			Pos:   Point{X: conceptStartX + float64(i)*conceptSpacing, Y: conceptRowY},
			Data:  ConceptPayload{Term: term, Origin: a},
		})
		g.Edges = append(g.Edges, Edge{
			From:     sourceID,
			To:       conceptID,
			Strength: containmentStrength,
			Kind:     EdgeContainment,
			Label:    "contains",
		})
		placed = append(placed, placedConcept{id: conceptID, term: term})
	}

	return placed
}

// addConnectionNode adds the synthesized hypothesis node at the midpoint
// below both sources, spoked to each of them. Callers ensure both source
// nodes exist.
func addConnectionNode(g *Graph, hyp *article.Hypothesis) {
	id := string(KindConnection)
	g.Nodes = append(g.Nodes, Node{
		ID:    id,
		Label: truncateLabel(hyp.Text),
		Kind:  KindConnection,
		Pos:   Point{X: (earlyAnchorX + lateAnchorX) / 2, Y: connectionNodeY},
		Data:  HypothesisPayload{Hypothesis: hyp},
	})

	for _, sourceID := range []string{string(KindSourceEarly), string(KindSourceLate)} {
		g.Edges = append(g.Edges, Edge{
			From:     sourceID,
			To:       id,
			Strength: connectionSpokeWeight,
			Kind:     EdgeConnection,
		})
	}
}
