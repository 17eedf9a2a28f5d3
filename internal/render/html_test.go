package render

import (
	"strings"
	"testing"

	"github.com/matsen/chronos/internal/graph"
)

func TestGenerateHTMLNilGraph(t *testing.T) {
	if _, err := GenerateHTML(nil); err == nil {
		t.Error("expected error for nil graph")
	}
}

func TestGenerateHTMLEmptyGraph(t *testing.T) {
	page, err := GenerateHTML(&graph.Graph{})
	if err != nil {
		t.Fatalf("GenerateHTML() error: %v", err)
	}
	if !strings.Contains(page, "No graph data") {
		t.Error("empty graph page missing empty-state message")
	}
}

func TestGenerateHTMLEmbedsGraph(t *testing.T) {
	g := testGraph(true)
	page, err := GenerateHTML(g)
	if err != nil {
		t.Fatalf("GenerateHTML() error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		g.Nodes[0].ID,
		"source-early",
		"MIN_SCALE = 0.3;",
		"MAX_SCALE = 3;",
		"ZOOM_STEP = 1.2;",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
