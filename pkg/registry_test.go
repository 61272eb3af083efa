package casetree

import "testing"

func TestRegistrySeenMark(t *testing.T) {
	reg := NewRegistry()

	if reg.Seen(StagePrimary, "A") {
		t.Error("Expected fresh registry to have no entries")
	}

	reg.Mark(StagePrimary, "A")
	if !reg.Seen(StagePrimary, "A") {
		t.Error("Expected A to be seen after Mark")
	}

	// Stages are independent
	if reg.Seen(StageNested, "A") {
		t.Error("Expected A to be unseen in nested stage")
	}

	reg.Mark(StageNested, "A")
	reg.Mark(StageNested, "B")
	if reg.Count(StageNested) != 2 {
		t.Errorf("Expected nested count 2, got %d", reg.Count(StageNested))
	}
	if reg.Count(StagePrimary) != 1 {
		t.Errorf("Expected primary count 1, got %d", reg.Count(StagePrimary))
	}
}

func TestRegistrySubIDGlobal(t *testing.T) {
	// Sub-identifier dedup uses one global set regardless of which
	// parent the sub-identifier appeared under.
	reg := NewRegistry()

	reg.Mark(StageSubID, "s1")
	if !reg.Seen(StageSubID, "s1") {
		t.Error("Expected s1 to be seen under any parent after first Mark")
	}
}
