package profiling

import (
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	Reset()
	for i := 0; i < 3; i++ {
		stop := Track("atlas.Build")
		time.Sleep(time.Millisecond)
		stop()
	}
	Track("meshing.Build")()

	if got := Count("atlas.Build"); got != 3 {
		t.Fatalf("count: got %d, want 3", got)
	}
	if got := Snapshot()["atlas.Build"]; got < 3*time.Millisecond {
		t.Errorf("total: got %v, want at least 3ms", got)
	}
	if got := SumWithPrefix("atlas."); got != Snapshot()["atlas.Build"] {
		t.Errorf("prefix sum: got %v, want %v", got, Snapshot()["atlas.Build"])
	}

	fields := Fields(1)
	if len(fields) != 1 {
		t.Fatalf("fields: got %d entries, want 1", len(fields))
	}
	if _, ok := fields["atlas.Build"]; !ok {
		t.Errorf("fields: want atlas.Build as the largest entry, got %v", fields)
	}

	Reset()
	if got := len(Snapshot()); got != 0 {
		t.Errorf("after reset: got %d entries, want 0", got)
	}
}
