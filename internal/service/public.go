package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/ports"
)

const (
	publicSchoolInfoPath = "/school-info"
	publicGalleryPath    = "/gallery"
	publicNewsPath       = "/news"
	publicPagesPath      = "/pages"
	publicContactPath    = "/contact"

	defaultNewsPageSize  = 6
	defaultHomeNewsLimit = 3
)

// PublicServiceOptions groups dependencies for PublicService.
type PublicServiceOptions struct {
	Client        ports.APIClient // must be the public client
	NewsPageSize  int
	HomeNewsLimit int
}

// PublicService reads the public mirror of the backend. It never touches sessions.
type PublicService struct {
	client        ports.APIClient
	newsPageSize  int
	homeNewsLimit int
}

// NewPublicService constructs a PublicService.
func NewPublicService(opts PublicServiceOptions) *PublicService {
	size := opts.NewsPageSize
	if size <= 0 {
		size = defaultNewsPageSize
	}
	limit := opts.HomeNewsLimit
	if limit <= 0 {
		limit = defaultHomeNewsLimit
	}
	return &PublicService{client: opts.Client, newsPageSize: size, homeNewsLimit: limit}
}

// HomeData is everything the home page shows.
type HomeData struct {
	SchoolInfo *content.SchoolInfo
	Gallery    []content.GalleryImage
	LatestNews []content.NewsItem
}

// Home fetches school info, gallery and news in parallel. Any failure fails the whole page.
func (s *PublicService) Home(ctx context.Context) (*HomeData, error) {
	var (
		data HomeData
		news []content.NewsItem
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := s.SchoolInfo(gctx)
		data.SchoolInfo = info
		return err
	})
	g.Go(func() error {
		images, err := s.Gallery(gctx)
		data.Gallery = images
		return err
	})
	g.Go(func() error {
		items, err := s.ListNews(gctx)
		news = items
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}

	data.LatestNews = news[:min(len(news), s.homeNewsLimit)]
	return &data, nil
}

// ListNews returns every published news item as the backend orders them.
func (s *PublicService) ListNews(ctx context.Context) ([]content.NewsItem, error) {
	items, err := fetchList[content.NewsItem](ctx, s.client, publicNewsPath)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// NewsPage is one page of the public news listing.
type NewsPage struct {
	Items  []content.NewsItem
	Window content.Window
}

// News fetches the full list and slices out the requested page in memory.
func (s *PublicService) News(ctx context.Context, page int) (*NewsPage, error) {
	items, err := s.ListNews(ctx)
	if err != nil {
		return nil, err
	}
	slice, window := content.Paginate(items, page, s.newsPageSize)
	return &NewsPage{Items: slice, Window: window}, nil
}

// Gallery returns every public gallery image.
func (s *PublicService) Gallery(ctx context.Context) ([]content.GalleryImage, error) {
	images, err := fetchList[content.GalleryImage](ctx, s.client, publicGalleryPath)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return images, nil
}

// SchoolInfo returns the school profile, or nil when none exists.
func (s *PublicService) SchoolInfo(ctx context.Context) (*content.SchoolInfo, error) {
	resp, err := get(ctx, s.client, publicSchoolInfoPath)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school info: %w", err)
	}
	return decodeRecord[content.SchoolInfo](resp.Body)
}

// PageBySlug returns a published page. An unknown slug is a not-found error.
func (s *PublicService) PageBySlug(ctx context.Context, slug string) (*content.Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperrors.NotFound("Page not found")
	}
	resp, err := get(ctx, s.client, resourcePath(publicPagesPath, slug))
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", slug, err)
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

// SubmitContact sends a visitor's message.
func (s *PublicService) SubmitContact(ctx context.Context, msg content.ContactSubmission) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	if msg.Name == "" || msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		return apperrors.Validation("Name, email and message are required.")
	}
	if err := send(ctx, s.client, http.MethodPost, publicContactPath, msg); err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}
	return nil
}
