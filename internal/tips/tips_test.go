package tips

import (
	"strings"
	"testing"
	"time"
)

func TestAll_NonEmpty(t *testing.T) {
	all := All()
	if len(all) < 10 {
		t.Fatalf("All() returned %d tips, want at least 10", len(all))
	}
	for i, tip := range all {
		if strings.TrimSpace(tip) == "" {
			t.Errorf("All()[%d] is empty", i)
		}
	}
}

func TestDaily_Deterministic(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	if Daily(day) != Daily(day2) {
		t.Error("Daily() returned different tips for the same day")
	}
}

func TestDaily_Rotates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		seen[Daily(start.AddDate(0, 0, i))] = true
	}
	if len(seen) != 10 {
		t.Errorf("Daily() gave %d distinct tips over 10 days, want 10", len(seen))
	}
}

func TestDaily_ReturnsTipFromPool(t *testing.T) {
	pool := make(map[string]bool)
	for _, tip := range All() {
		pool[tip] = true
	}
	for _, day := range []time.Time{
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	} {
		if tip := Daily(day); !pool[tip] {
			t.Errorf("Daily(%s) returned a tip not in All(): %q", day.Format("2006-01-02"), tip)
		}
	}
}
