package bvh

import "testing"

func TestSpatialHashQueryAABBFindsInsertedID(t *testing.T) {
	g := NewSpatialHash[string](1.0)
	g.Insert("a", box(0, 0, 0, 0.5, 0.5, 0.5))

	results := g.QueryAABB(box(0, 0, 0, 1, 1, 1))
	if len(results) != 1 || results[0] != "a" {
		t.Fatalf("expected to find 'a' in the queried cells, got %v", results)
	}
}

func TestSpatialHashQueryAABBDedupsAcrossCells(t *testing.T) {
	g := NewSpatialHash[string](1.0)
	g.Insert("wide", box(0, 0, 0, 3, 3, 3))

	results := g.QueryAABB(box(0, 0, 0, 3, 3, 3))
	count := 0
	for _, id := range results {
		if id == "wide" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected 'wide' to appear exactly once despite spanning multiple cells, got %d", count)
	}
}

func TestSpatialHashClearRemovesEntries(t *testing.T) {
	g := NewSpatialHash[string](1.0)
	g.Insert("a", box(0, 0, 0, 0.5, 0.5, 0.5))
	g.Clear()

	results := g.QueryAABB(box(0, 0, 0, 1, 1, 1))
	if len(results) != 0 {
		t.Fatalf("expected no results after Clear, got %v", results)
	}
}

func TestCandidatePairsFromBVHNarrowsToSharedCells(t *testing.T) {
	b := New[string]()
	b.Add("near1", box(0, 0, 0, 0.5, 0.5, 0.5))
	b.Add("near2", box(0.1, 0.1, 0.1, 0.6, 0.6, 0.6))
	b.Add("far", box(100, 100, 100, 101, 101, 101))

	g := NewSpatialHash[string](1.0)
	pairs := g.CandidatePairsFromBVH(b)

	for _, p := range pairs {
		if p.A == "far" || p.B == "far" {
			t.Fatalf("expected the distant entry not to appear in any candidate pair, got %v", p)
		}
	}
	if len(pairs) == 0 {
		t.Fatalf("expected at least one candidate pair from the two nearby boxes")
	}
}

func TestSpatialHashCellIndexHandlesNegativeCoordinates(t *testing.T) {
	g := NewSpatialHash[string](1.0)
	g.Insert("neg", box(-2.5, -2.5, -2.5, -2.0, -2.0, -2.0))

	results := g.QueryAABB(box(-3, -3, -3, -2, -2, -2))
	if len(results) != 1 {
		t.Fatalf("expected to find the negatively-positioned entry, got %v", results)
	}
}
