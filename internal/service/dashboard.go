package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
)

// DashboardService gathers the admin dashboard counts.
type DashboardService struct {
	pages    *PageRepository
	news     *NewsRepository
	gallery  *GalleryRepository
	messages *MessageRepository
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Pages    *PageRepository
	News     *NewsRepository
	Gallery  *GalleryRepository
	Messages *MessageRepository
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	return &DashboardService{
		pages:    opts.Pages,
		news:     opts.News,
		gallery:  opts.Gallery,
		messages: opts.Messages,
	}
}

// Stats fetches the four collections concurrently. Counts are all or nothing:
// any failure cancels the rest and returns nil stats. An ended session wins over
// any other failure so the caller always sends the browser back to sign in.
func (s *DashboardService) Stats(ctx context.Context) (*content.DashboardStats, error) {
	var (
		stats        content.DashboardStats
		unauthorized atomic.Bool
	)
	track := func(err error) error {
		if apperrors.IsUnauthorized(err) {
			unauthorized.Store(true)
		}
		return err
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.pages.List(gctx)
		stats.Pages = len(items)
		return track(err)
	})
	g.Go(func() error {
		items, err := s.news.List(gctx)
		stats.News = len(items)
		return track(err)
	})
	g.Go(func() error {
		items, err := s.gallery.List(gctx)
		stats.Gallery = len(items)
		return track(err)
	})
	g.Go(func() error {
		items, err := s.messages.List(gctx)
		stats.Messages = len(items)
		return track(err)
	})

	if err := g.Wait(); err != nil {
		if unauthorized.Load() {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
