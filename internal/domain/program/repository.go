package program

import (
	"context"
)

// Repository defines how the weekly grid is fetched from durable storage.
// The grid is read once at startup into a Table; there is no runtime
// mutation path.
type Repository interface {
	ListAll(ctx context.Context) ([]*Schedule, error)
}
