package registry

import "sync"

// Interner canonicalizes repeated strings (simplified keys, extensions) so a
// registry holding thousands of descriptors stores each distinct value once.
// An Interner may be shared between registries; the canonical instance of a
// value is whichever was interned first.
type Interner struct {
	mu    sync.Mutex
	table map[string]string
}

// NewInterner returns an empty interning table.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]string)}
}

// Intern returns the canonical instance of s.
func (i *Interner) Intern(s string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if canonical, ok := i.table[s]; ok {
		return canonical
	}
	i.table[s] = s
	return s
}

// Len reports the number of distinct strings interned.
func (i *Interner) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.table)
}
