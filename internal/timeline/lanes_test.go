package timeline

import "testing"

func TestAllocateLanesOrder(t *testing.T) {
	lanes := AllocateLanes([]string{"main", "develop", "feature/x"})

	if lanes["main"] != 0 {
		t.Fatalf("expected lane 0 for main, got %d", lanes["main"])
	}
	if lanes["develop"] != 1 {
		t.Fatalf("expected lane 1 for develop, got %d", lanes["develop"])
	}
	if lanes["feature/x"] != 2 {
		t.Fatalf("expected lane 2 for feature/x, got %d", lanes["feature/x"])
	}
}

func TestAllocateLanesInjective(t *testing.T) {
	lanes := AllocateLanes([]string{"a", "b", "c", "d", "e"})

	seen := make(map[int]string)
	for name, lane := range lanes {
		if other, ok := seen[lane]; ok {
			t.Fatalf("lane %d shared by %s and %s", lane, other, name)
		}
		seen[lane] = name
	}
}

func TestAllocateLanesDuplicates(t *testing.T) {
	lanes := AllocateLanes([]string{"main", "main", "develop"})

	if len(lanes) != 2 {
		t.Fatalf("expected 2 lanes, got %d", len(lanes))
	}
	if lanes["main"] != 0 || lanes["develop"] != 1 {
		t.Fatalf("unexpected lanes: %#v", lanes)
	}
}

func TestAllocateLanesEmpty(t *testing.T) {
	if lanes := AllocateLanes(nil); len(lanes) != 0 {
		t.Fatalf("expected no lanes, got %#v", lanes)
	}
}
