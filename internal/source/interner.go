package source

import (
	"slices"
	"sync"
)

// StringID is a stable handle for an interned string.
type StringID uint32

// NoStringID is reserved for the empty string.
const NoStringID StringID = 0

// Interner maps strings to StringIDs for the lifetime of a session.
// It is safe for concurrent use so that a batch of files can share one table.
type Interner struct {
	mu    sync.RWMutex
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, adding it on first sight.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	// повторная проверка: другая горутина могла успеть
	if id, ok := i.index[s]; ok {
		return id
	}
	// Own copy, so the ID does not pin the caller's source buffer.
	cpy := string([]byte(s))
	id = StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

func (i *Interner) InternBytes(b []byte) StringID {
	i.mu.RLock()
	id, ok := i.index[string(b)]
	i.mu.RUnlock()
	if ok {
		return id
	}
	return i.Intern(string(b))
}

// Lookup returns the string for id, or "" and false for unknown IDs.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown ID.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

func (i *Interner) Has(id StringID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int(id) < len(i.byID)
}

// Len counts NoStringID too, so it is never below 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings indexed by ID.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}
