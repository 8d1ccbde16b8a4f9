package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"program_reminder_bot/internal/domain/news"
)

// MemoryNewsRepository is the news backend on runtimes without a database.
// Items posted at runtime live until the process exits.
type MemoryNewsRepository struct {
	mu    sync.Mutex
	items []*news.Item
}

func NewMemoryNewsRepository(seed []*news.Item) *MemoryNewsRepository {
	return &MemoryNewsRepository{items: append([]*news.Item(nil), seed...)}
}

func (r *MemoryNewsRepository) Create(_ context.Context, item *news.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items = append(r.items, &copied)
	return nil
}

func (r *MemoryNewsRepository) ListRecent(_ context.Context, limit int) ([]*news.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]*news.Item(nil), r.items...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SeedNews returns the built-in headlines shown before any operator post.
func SeedNews(now time.Time) []*news.Item {
	titles := []string{
		"Governor Announces New Infrastructure Development Plan",
		"Local Football Team Secures Championship Victory",
		"Community Health Initiative Launches Across the State",
		"Economic Summit Brings International Investors",
		"Education Reform Bill Passes Legislative Assembly",
		"Cultural Festival Celebrates Heritage and Diversity",
	}
	items := make([]*news.Item, 0, len(titles))
	for i, title := range titles {
		items = append(items, &news.Item{
			ID:          fmt.Sprintf("seed-%d", i+1),
			Title:       title,
			PublishedAt: now.Add(-time.Duration(2*(i+1)) * time.Hour),
		})
	}
	return items
}
