package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/ports"
)

const adminPagesPath = "/admin/pages"

// PageRepository manages CMS pages through the admin API.
// Mutations return only an error; callers re-fetch with List afterwards.
type PageRepository struct {
	client ports.APIClient
}

// NewPageRepository constructs a PageRepository over the authenticated client.
func NewPageRepository(client ports.APIClient) *PageRepository {
	return &PageRepository{client: client}
}

// List returns every page, published or not.
func (r *PageRepository) List(ctx context.Context) ([]content.Page, error) {
	pages, err := fetchList[content.Page](ctx, r.client, adminPagesPath)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// Get returns a page by ID or slug.
func (r *PageRepository) Get(ctx context.Context, idOrSlug string) (*content.Page, error) {
	if strings.TrimSpace(idOrSlug) == "" {
		return nil, apperrors.NotFound("Page not found")
	}
	resp, err := get(ctx, r.client, resourcePath(adminPagesPath, idOrSlug))
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", idOrSlug, err)
	}
	page, err := decodeRecord[content.Page](resp.Body)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, apperrors.NotFound("Page not found")
	}
	return page, nil
}

// Create adds a page.
func (r *PageRepository) Create(ctx context.Context, in content.PageInput) error {
	if err := send(ctx, r.client, http.MethodPost, adminPagesPath, pageBody(in)); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

// Update replaces a page's fields. The cover image is only sent when a new one is attached.
func (r *PageRepository) Update(ctx context.Context, id string, in content.PageInput) error {
	if id == "" {
		return errors.New("page ID is required")
	}
	if err := send(ctx, r.client, http.MethodPut, resourcePath(adminPagesPath, id), pageBody(in)); err != nil {
		return fmt.Errorf("update page %s: %w", id, err)
	}
	return nil
}

// Delete removes a page.
func (r *PageRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("page ID is required")
	}
	if err := send(ctx, r.client, http.MethodDelete, resourcePath(adminPagesPath, id), nil); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	return nil
}

func pageBody(in content.PageInput) any {
	return formBody([]formValue{
		{"title", in.Title},
		{"content", in.Content},
		{"metaTitle", in.MetaTitle},
		{"metaDescription", in.MetaDescription},
		{"isPublished", in.IsPublished},
	}, in.Image)
}
