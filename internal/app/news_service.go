package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"program_reminder_bot/internal/domain/news"

	"github.com/google/uuid"
)

// Custom application-level errors for the news service.
var ErrNewsNotAuthorized = fmt.Errorf("performing user is not authorized to post news")
var ErrEmptyNewsTitle = fmt.Errorf("news title is empty")

const defaultNewsLimit = 10

// NewsService manages the station's news feed. Posting is restricted to the
// configured admin; reading is open.
type NewsService struct {
	newsRepo        news.Repository
	adminTelegramID int64
}

func NewNewsService(nr news.Repository, adminID int64) *NewsService {
	return &NewsService{
		newsRepo:        nr,
		adminTelegramID: adminID,
	}
}

// PostNews creates a news item on behalf of the admin.
func (s *NewsService) PostNews(ctx context.Context, performingUserID int64, title string) (*news.Item, error) {
	if performingUserID != s.adminTelegramID {
		return nil, ErrNewsNotAuthorized
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyNewsTitle
	}

	item := &news.Item{
		ID:          uuid.NewString(),
		Title:       title,
		PublishedAt: time.Now(),
	}
	if err := s.newsRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create news item in repository: %w", err)
	}
	return item, nil
}

// LatestNews returns the most recent items, newest first.
func (s *NewsService) LatestNews(ctx context.Context) ([]*news.Item, error) {
	items, err := s.newsRepo.ListRecent(ctx, defaultNewsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news items: %w", err)
	}
	return items, nil
}
