package spatial

import "testing"

func contains(ids []uint32, want uint32) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestGridQueryRadius(t *testing.T) {
	g := NewGrid(60, 5, 64)

	g.Insert(1, 10, 10)
	g.Insert(2, 12, 10)
	g.Insert(3, 50, 50)

	got := g.QueryRadius(10, 10, 5)
	if !contains(got, 1) || !contains(got, 2) {
		t.Errorf("nearby entities missing from %v", got)
	}
	if contains(got, 3) {
		t.Errorf("far entity leaked into %v", got)
	}
}

func TestGridQueryIsSuperset(t *testing.T) {
	g := NewGrid(60, 5, 64)

	// Same cell but outside the radius: the broad phase may still return
	// it; it must never miss anything inside the radius.
	g.Insert(1, 11, 11)
	g.Insert(2, 14, 14)

	got := g.QueryRadius(10, 10, 2)
	if !contains(got, 1) {
		t.Errorf("entity inside the radius missing from %v", got)
	}
}

func TestGridClampsOutOfBounds(t *testing.T) {
	g := NewGrid(60, 5, 64)

	g.Insert(1, -10, -10)
	g.Insert(2, 500, 500)

	if got := g.QueryRadius(0, 0, 3); !contains(got, 1) {
		t.Errorf("below-origin insert lost: %v", got)
	}
	if got := g.QueryRadius(59, 59, 3); !contains(got, 2) {
		t.Errorf("beyond-arena insert lost: %v", got)
	}
}

func TestGridClearKeepsNothing(t *testing.T) {
	g := NewGrid(60, 5, 64)

	g.Insert(1, 10, 10)
	g.Clear()

	if got := g.QueryRadius(10, 10, 10); len(got) != 0 {
		t.Errorf("query after Clear returned %v", got)
	}
}

func TestGridScratchReuse(t *testing.T) {
	g := NewGrid(60, 5, 64)
	g.Insert(1, 10, 10)
	g.Insert(2, 40, 40)

	first := g.QueryRadius(10, 10, 2)
	if !contains(first, 1) {
		t.Fatalf("first query missing entity: %v", first)
	}

	// The second query reuses the scratch buffer; results from the first
	// query are invalidated, not appended to.
	second := g.QueryRadius(40, 40, 2)
	if !contains(second, 2) || contains(second, 1) {
		t.Errorf("second query = %v, want only entity 2", second)
	}
}
