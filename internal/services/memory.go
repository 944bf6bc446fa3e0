package services

import (
	"sort"
	"sync"
	"time"
)

// memTable is a mutex-guarded map of documents. Every read and write copies
// through clone so callers never share state with the table.
type memTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	clone func(*T) *T
}

func newMemTable[T any](clone func(*T) *T) *memTable[T] {
	return &memTable[T]{
		rows:  make(map[string]*T),
		clone: clone,
	}
}

func (t *memTable[T]) get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.clone(row), true
}

func (t *memTable[T]) put(id string, row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = t.clone(row)
}

func (t *memTable[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// update applies fn to the stored row under the write lock and returns a copy
// of the result. found is false when id is absent.
func (t *memTable[T]) update(id string, fn func(*T) error) (out *T, found bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, false, nil
	}
	next := t.clone(row)
	if err := fn(next); err != nil {
		return nil, true, err
	}
	t.rows[id] = next
	return t.clone(next), true, nil
}

func (t *memTable[T]) filter(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0)
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// removeWhere deletes matching rows and returns them.
func (t *memTable[T]) removeWhere(match func(*T) bool) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*T, 0)
	for id, row := range t.rows {
		if match(row) {
			out = append(out, row)
			delete(t.rows, id)
		}
	}
	return out
}

func shallowClone[T any](v *T) *T {
	c := *v
	return &c
}

func sortNewestFirst[T any](rows []*T, createdAt func(*T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
