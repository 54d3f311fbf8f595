package wardroberepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/style-ai/internal/domain/wardrobe"
)

// MemoryRepository keeps wardrobe items in memory for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]wardrobe.Item
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		items:  make(map[int64]wardrobe.Item),
	}
}

func (r *MemoryRepository) Create(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []wardrobe.Item
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	return item, ok, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
