package routegraph_test

import (
	"testing"

	"github.com/samirrijal/meetpoint/internal/pkg/routegraph"
)

func TestShortestPath_ViaMidpoint(t *testing.T) {
	// Star topology: every point connects only through M.
	g := routegraph.New()
	g.AddEdge("A", "M", 120)
	g.AddEdge("B", "M", 80)
	g.AddEdge("C", "M", 200)

	path, total, err := g.ShortestPath("A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A", "M", "B"}
	if len(path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, path)
		}
	}
	if total != 200 {
		t.Errorf("expected total weight 200, got %f", total)
	}
}

func TestShortestPath_PrefersLighterRoute(t *testing.T) {
	g := routegraph.New()
	g.AddEdge("A", "B", 100)
	g.AddEdge("A", "M", 30)
	g.AddEdge("M", "B", 30)

	path, total, err := g.ShortestPath("A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 3 || path[1] != "M" {
		t.Errorf("expected route via M, got %v", path)
	}
	if total != 60 {
		t.Errorf("expected total 60, got %f", total)
	}
}

func TestShortestPath_SameNode(t *testing.T) {
	g := routegraph.New()
	g.AddEdge("A", "M", 10)

	path, total, err := g.ShortestPath("A", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 || path[0] != "A" || total != 0 {
		t.Errorf("expected trivial path [A] with weight 0, got %v (%f)", path, total)
	}
}

func TestShortestPath_UnknownNode(t *testing.T) {
	g := routegraph.New()
	g.AddEdge("A", "M", 10)

	if _, _, err := g.ShortestPath("A", "Z"); err == nil {
		t.Error("expected error for unknown target")
	}
	if _, _, err := g.ShortestPath("Z", "A"); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestShortestPath_Disconnected(t *testing.T) {
	g := routegraph.New()
	g.AddEdge("A", "M", 10)
	g.AddEdge("X", "Y", 5)

	if _, _, err := g.ShortestPath("A", "X"); err == nil {
		t.Error("expected error for disconnected nodes")
	}
}
