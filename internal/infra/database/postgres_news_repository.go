package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"program_reminder_bot/internal/domain/news"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrDuplicateNewsID = fmt.Errorf("news item with this id already exists")

type PostgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) *PostgresNewsRepository {
	return &PostgresNewsRepository{db: db}
}

func (r *PostgresNewsRepository) Create(ctx context.Context, item *news.Item) error {
	query := `INSERT INTO news_items (id, title, published_at)
               VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.Title, item.PublishedAt)
	if err != nil {
		if strings.Contains(err.Error(), "news_items_pkey") {
			return ErrDuplicateNewsID
		}
		return fmt.Errorf("error creating news item: %w", err)
	}
	return nil
}

func (r *PostgresNewsRepository) ListRecent(ctx context.Context, limit int) ([]*news.Item, error) {
	query := `SELECT id, title, published_at FROM news_items
               ORDER BY published_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing news items: %w", err)
	}
	defer rows.Close()

	var items []*news.Item
	for rows.Next() {
		item := &news.Item{}
		if err := rows.Scan(&item.ID, &item.Title, &item.PublishedAt); err != nil {
			return nil, fmt.Errorf("error scanning news row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news rows: %w", err)
	}
	return items, nil
}
