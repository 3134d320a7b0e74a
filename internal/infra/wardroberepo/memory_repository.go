package wardroberepo

import (
	"context"
	"sync"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

// ErrDuplicateFilename is returned when an item with the same filename already exists.
var ErrDuplicateFilename = wardrobe.ErrDuplicateFilename

// MemoryRepository keeps items in memory for tests/dev.
type MemoryRepository struct {
	mu        sync.RWMutex
	items     []wardrobe.Item
	nameIndex map[string]int
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nameIndex: make(map[string]int)}
}

// Create appends the item, preserving insertion order.
func (r *MemoryRepository) Create(_ context.Context, item wardrobe.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.nameIndex[item.Filename]; exists {
		return ErrDuplicateFilename
	}
	item.Colors = append([]string(nil), item.Colors...)
	item.StyleVector = append([]float32(nil), item.StyleVector...)
	r.nameIndex[item.Filename] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

// List returns a copy of every item, oldest first.
func (r *MemoryRepository) List(_ context.Context) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wardrobe.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// FindByFilename looks up an item by its stored filename.
func (r *MemoryRepository) FindByFilename(_ context.Context, filename string) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.nameIndex[filename]
	if !ok {
		return wardrobe.Item{}, false, nil
	}
	return r.items[idx], true, nil
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
