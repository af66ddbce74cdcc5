package report

import (
	"fmt"
	"testing"
)

// countingStore wraps DiskStore to count backing loads.
type countingStore struct {
	back  Store
	loads int
}

func (c *countingStore) Save(run *Run) error { return c.back.Save(run) }

func (c *countingStore) Load(runID string) (*Run, error) {
	c.loads++
	return c.back.Load(runID)
}

func TestDiskStore_SaveLoad(t *testing.T) {
	s := NewDiskStore()
	run := sampleRun()
	if err := s.Save(run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(run.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != run.ID || len(got.Records) != len(run.Records) {
		t.Errorf("Load = %+v, want %+v", got, run)
	}
	if got.Records[1].ErrorMessage != run.Records[1].ErrorMessage {
		t.Errorf("ErrorMessage = %q, want %q", got.Records[1].ErrorMessage, run.Records[1].ErrorMessage)
	}
}

func TestDiskStore_LoadMissing(t *testing.T) {
	s := NewDiskStore()
	if _, err := s.Load("no-such-run"); err == nil {
		t.Fatal("expected error for unknown run ID")
	}
}

func TestLRUStore_CacheHit(t *testing.T) {
	counting := &countingStore{back: NewDiskStore()}
	s := NewLRUStore(2, counting)

	run := sampleRun()
	if err := s.Save(run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Load(run.ID); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if counting.loads != 0 {
		t.Errorf("backing loads = %d, want 0 (cache hit)", counting.loads)
	}
}

func TestLRUStore_Eviction(t *testing.T) {
	counting := &countingStore{back: NewDiskStore()}
	s := NewLRUStore(2, counting)

	for i := 0; i < 3; i++ {
		run := &Run{ID: fmt.Sprintf("run-%d", i)}
		if err := s.Save(run); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	// run-0 was evicted; loading it must fall through to disk.
	if _, err := s.Load("run-0"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if counting.loads != 1 {
		t.Errorf("backing loads = %d, want 1 (eviction miss)", counting.loads)
	}

	// run-2 is still cached.
	if _, err := s.Load("run-2"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if counting.loads != 1 {
		t.Errorf("backing loads = %d, want 1 (run-2 cached)", counting.loads)
	}
}
