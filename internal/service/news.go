package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
	"github.com/target/schoolsite-ui/internal/ports"
)

const adminNewsPath = "/admin/news"

// NewsRepository manages news items through the admin API.
type NewsRepository struct {
	client ports.APIClient
}

// NewNewsRepository constructs a NewsRepository over the authenticated client.
func NewNewsRepository(client ports.APIClient) *NewsRepository {
	return &NewsRepository{client: client}
}

// List returns every news item including drafts.
func (r *NewsRepository) List(ctx context.Context) ([]content.NewsItem, error) {
	items, err := fetchList[content.NewsItem](ctx, r.client, adminNewsPath)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// Create adds a news item. Without a cover image the body is plain JSON.
func (r *NewsRepository) Create(ctx context.Context, in content.NewsInput) error {
	body := formBody([]formValue{
		{"title", in.Title},
		{"content", in.Content},
		{"isPublished", in.IsPublished},
	}, in.Image)

	if err := send(ctx, r.client, http.MethodPost, adminNewsPath, body); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// Delete removes a news item.
func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("news ID is required")
	}
	if err := send(ctx, r.client, http.MethodDelete, resourcePath(adminNewsPath, id), nil); err != nil {
		return fmt.Errorf("delete news %s: %w", id, err)
	}
	return nil
}
