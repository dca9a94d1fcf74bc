package index

import (
	"errors"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

func testRecords() []domain.Record {
	return []domain.Record{
		domain.CommitRecord{Base: domain.Base{Repository: "acme/web-app", Year: 2024, CommitHash: "aaa111"}},
		domain.PullRequestRecord{
			Base:   domain.Base{Repository: "acme/api-server", Year: 2024, CommitHash: "bbb222"},
			Number: 456,
			State:  domain.StateMerged,
		},
		domain.CodeRecord{Base: domain.Base{Repository: "acme/mobile-app", Year: 2023, CommitHash: "ccc333"}},
	}
}

func TestNewMemoryIndex(t *testing.T) {
	idx := NewMemoryIndex()
	if idx == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if idx.Loaded() {
		t.Error("NewMemoryIndex() should not be loaded")
	}
	if idx.Count() != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %d records", idx.Count())
	}
	if !idx.LoadedAt().IsZero() {
		t.Error("LoadedAt() should be zero before Load()")
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	idx := NewMemoryIndex()
	records := testRecords()

	if err := idx.Load("test", records); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := idx.Records()
	if len(got) != len(records) {
		t.Fatalf("Records() returned %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Info().CommitHash != records[i].Info().CommitHash {
			t.Errorf("Records()[%d] = %s, want %s", i, got[i].Info().CommitHash, records[i].Info().CommitHash)
		}
	}
	if idx.Source() != "test" {
		t.Errorf("Source() = %q, want test", idx.Source())
	}
}

func TestLoadOnlyOnce(t *testing.T) {
	idx := NewMemoryIndex()
	if err := idx.Load("test", testRecords()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	err := idx.Load("test", testRecords()[:1])
	if !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second Load() error = %v, want ErrAlreadyLoaded", err)
	}
	if idx.Count() != 3 {
		t.Errorf("second Load() should not replace records, got %d", idx.Count())
	}
}

func TestLoadRejectsNilRecord(t *testing.T) {
	idx := NewMemoryIndex()
	records := append(testRecords(), nil)

	err := idx.Load("test", records)
	if !errors.Is(err, ErrNilRecord) {
		t.Fatalf("Load() error = %v, want ErrNilRecord", err)
	}
	if idx.Loaded() {
		t.Error("a rejected collection must leave the index unloaded")
	}

	// the index can still be loaded with a valid collection
	if err := idx.Load("test", testRecords()); err != nil {
		t.Errorf("Load() after rejection error = %v", err)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	idx := NewMemoryIndex()
	if err := idx.Load("test", testRecords()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	snapshot := idx.Records()
	snapshot[0] = nil

	again := idx.Records()
	if again[0] == nil {
		t.Error("mutating the returned slice must not affect the store")
	}
}

func TestLoadCopiesInput(t *testing.T) {
	idx := NewMemoryIndex()
	records := testRecords()
	if err := idx.Load("test", records); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	records[1] = nil
	if r, ok := idx.At(1); !ok || r == nil {
		t.Error("mutating the input slice must not affect the store")
	}
}

func TestBySHA(t *testing.T) {
	idx := NewMemoryIndex()
	if err := idx.Load("test", testRecords()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rec, ok := idx.BySHA("bbb222")
	if !ok {
		t.Fatal("BySHA() did not find bbb222")
	}
	if rec.Kind() != domain.KindPullRequest {
		t.Errorf("BySHA() kind = %s, want pull_request", rec.Kind())
	}

	if _, ok := idx.BySHA("missing"); ok {
		t.Error("BySHA() should not find unknown hash")
	}
}

func TestAtBounds(t *testing.T) {
	idx := NewMemoryIndex()
	if err := idx.Load("test", testRecords()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, i := range []int{-1, 3, 100} {
		if _, ok := idx.At(i); ok {
			t.Errorf("At(%d) should be out of range", i)
		}
	}
}

func TestFingerprintStable(t *testing.T) {
	a := NewMemoryIndex()
	b := NewMemoryIndex()
	_ = a.Load("a", testRecords())
	_ = b.Load("b", testRecords())

	if a.Fingerprint() == "" {
		t.Fatal("Fingerprint() should not be empty")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("same records should give same fingerprint: %s != %s", a.Fingerprint(), b.Fingerprint())
	}

	c := NewMemoryIndex()
	_ = c.Load("c", testRecords()[:2])
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different records should give different fingerprints")
	}
}

func TestConcurrentReads(t *testing.T) {
	idx := NewMemoryIndex()
	if err := idx.Load("test", testRecords()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := len(idx.Records()); got != 3 {
				t.Errorf("Records() = %d, want 3", got)
			}
			_, _ = idx.BySHA("aaa111")
		}()
	}
	wg.Wait()
}
