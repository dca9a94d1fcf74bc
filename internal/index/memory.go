package index

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

var (
	// ErrAlreadyLoaded is returned by a second call to Load.
	ErrAlreadyLoaded = errors.New("record store already loaded")
	// ErrNilRecord is returned by Load when the collection holds a nil record.
	ErrNilRecord = errors.New("nil record")
)

// MemoryIndex is the record store: an ordered collection loaded once
// and read-only afterwards.
type MemoryIndex struct {
	mu          sync.RWMutex
	records     []domain.Record
	bySHA       map[string]int // commit hash -> first position
	loaded      bool
	loadedAt    time.Time
	source      string
	fingerprint string
}

// NewMemoryIndex creates an empty, not yet loaded index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		bySHA: make(map[string]int),
	}
}

// Load stores the collection. It can only succeed once per process.
func (idx *MemoryIndex) Load(source string, records []domain.Record) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.loaded {
		return ErrAlreadyLoaded
	}
	for i, r := range records {
		if r == nil {
			return fmt.Errorf("%w at position %d", ErrNilRecord, i)
		}
	}

	idx.records = make([]domain.Record, len(records))
	copy(idx.records, records)

	idx.bySHA = make(map[string]int, len(records))
	for i, r := range idx.records {
		sha := r.Info().CommitHash
		if _, dup := idx.bySHA[sha]; !dup {
			idx.bySHA[sha] = i
		}
	}

	idx.fingerprint = fingerprint(idx.records)
	idx.source = source
	idx.loaded = true
	idx.loadedAt = time.Now()
	return nil
}

// Records returns the collection in its original order.
// The slice is a copy; records themselves are values and cannot be mutated.
func (idx *MemoryIndex) Records() []domain.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.Record, len(idx.records))
	copy(out, idx.records)
	return out
}

// At returns the record at position i.
func (idx *MemoryIndex) At(i int) (domain.Record, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if i < 0 || i >= len(idx.records) {
		return nil, false
	}
	return idx.records[i], true
}

// BySHA returns the first record anchored on the given commit hash.
func (idx *MemoryIndex) BySHA(sha string) (domain.Record, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	i, ok := idx.bySHA[sha]
	if !ok {
		return nil, false
	}
	return idx.records[i], true
}

// Count returns the number of records
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.records)
}

// Loaded reports whether Load has succeeded
func (idx *MemoryIndex) Loaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.loaded
}

// LoadedAt returns when the collection was loaded (zero if never)
func (idx *MemoryIndex) LoadedAt() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.loadedAt
}

// Source returns the name of the source the collection came from
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// Fingerprint identifies the loaded collection. Two processes loading the
// same records in the same order get the same fingerprint.
func (idx *MemoryIndex) Fingerprint() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.fingerprint
}

func fingerprint(records []domain.Record) string {
	h := sha256.New()
	for _, r := range records {
		b := r.Info()
		state, _ := domain.StateOf(r)
		number := 0
		if pr, ok := r.(domain.PullRequestRecord); ok {
			number = pr.Number
		}
		for _, part := range []string{
			string(r.Kind()), b.Repository, strconv.Itoa(b.Year), b.Title, b.Message,
			b.Author, b.FilePath, b.CommitHash, string(state), strconv.Itoa(number),
		} {
			h.Write([]byte(part))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
