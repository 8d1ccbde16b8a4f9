package news

import (
	"context"
	"time"
)

// Item is one entry on the station's news feed.
type Item struct {
	ID          string
	Title       string
	PublishedAt time.Time
}

// Repository defines persistence for news items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	ListRecent(ctx context.Context, limit int) ([]*Item, error)
}
