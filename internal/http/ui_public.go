package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/http/ui/viewmodel"
)

const (
	msgContactSent      = "Message sent successfully!"
	errMsgContactFailed = "Failed to send message. Please try again."
)

// seoSource is the per-record SEO override; blank fields fall through.
type seoSource struct {
	Title       string
	Description string
	Image       string
}

// buildSEO resolves meta tags from the record, then the school profile, then site defaults.
func (h *UIHandlers) buildSEO(r *http.Request, rec seoSource, info *content.SchoolInfo) viewmodel.SEO {
	seo := viewmodel.SEO{
		Title:       h.Site.Name,
		Description: h.Site.Description,
		Keywords:    h.Site.Keywords,
	}
	if info != nil {
		seo.Title = firstNonBlank(info.MetaTitle, info.SchoolName, seo.Title)
		seo.Description = firstNonBlank(info.MetaDescription, seo.Description)
		seo.Keywords = firstNonBlank(info.KeywordsString(), seo.Keywords)
		seo.OGImage = firstNonBlank(info.OGImage, info.Logo)
		if base := strings.TrimRight(strings.TrimSpace(info.CanonicalURL), "/"); base != "" {
			seo.CanonicalURL = base + r.URL.Path
		}
	}
	seo.Title = firstNonBlank(rec.Title, seo.Title)
	seo.Description = firstNonBlank(rec.Description, seo.Description)
	seo.OGImage = firstNonBlank(rec.Image, seo.OGImage)
	return seo
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// publicChrome applies the school profile to the shared header, footer and SEO.
func (h *UIHandlers) publicChrome(r *http.Request, data map[string]any, info *content.SchoolInfo, rec seoSource) {
	data["School"] = info
	if info != nil && strings.TrimSpace(info.SchoolName) != "" {
		data["SiteName"] = info.SchoolName
	}
	data["SEO"] = h.buildSEO(r, rec, info)
}

// schoolInfo loads the profile for page chrome. A failure only loses the chrome.
func (h *UIHandlers) schoolInfo(r *http.Request) *content.SchoolInfo {
	info, err := h.Public.SchoolInfo(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "school info unavailable", "error", err)
		return nil
	}
	return info
}

// Home renders the landing page: school profile, gallery and the latest news.
// GET /{$}.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, PageMeta{Title: "Home", CurrentPage: PageHome})

	home, err := h.Public.Home(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "home content failed", "error", err)
		markPageError(data, "Failed to load content")
		home = nil
	}

	if home != nil {
		data["Gallery"] = home.Gallery
		data["LatestNews"] = home.LatestNews
		h.publicChrome(r, data, home.SchoolInfo, seoSource{})
	} else {
		data["Gallery"] = []content.GalleryImage{}
		data["LatestNews"] = []content.NewsItem{}
		h.publicChrome(r, data, nil, seoSource{})
	}
	h.renderPage(w, r, data)
}

// pageParam reads ?page; anything unparsable is page 1 and the window clamps the rest.
func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NewsPage lists published news, paginated in the UI.
// GET /news[?page=N].
func (h *UIHandlers) NewsPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, PageMeta{Title: "News", CurrentPage: PageNews})
	h.publicChrome(r, data, h.schoolInfo(r), seoSource{Title: "News"})

	result, err := h.Public.News(r.Context(), pageParam(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "news list failed", "error", err)
		markPageError(data, "Failed to load news")
		data["Items"] = []content.NewsItem{}
		h.renderPage(w, r, data)
		return
	}

	data["Items"] = result.Items
	pagination := viewmodel.NewPagination(result.Window, "/news", r.URL.Query())
	data["Pagination"] = pagination
	h.renderPage(w, r, data)
}

// GalleryPage shows every gallery image.
// GET /gallery.
func (h *UIHandlers) GalleryPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, PageMeta{Title: "Gallery", CurrentPage: PageGallery})
	h.publicChrome(r, data, h.schoolInfo(r), seoSource{Title: "Gallery"})

	images, err := h.Public.Gallery(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "gallery failed", "error", err)
		markPageError(data, "Failed to load gallery")
		images = []content.GalleryImage{}
	}
	data["Items"] = images
	h.renderPage(w, r, data)
}

func contactMeta() PageMeta {
	return PageMeta{Title: "Contact", CurrentPage: PageContact}
}

// ContactPage renders the contact form with the school's details.
// GET /contact.
func (h *UIHandlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, contactMeta())
	h.publicChrome(r, data, h.schoolInfo(r), seoSource{Title: "Contact Us"})
	h.renderPage(w, r, data)
}

// SubmitContact validates and forwards a visitor message.
// POST /contact.
func (h *UIHandlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, contactMeta())
	form := readForm(r, content.ContactSchema)
	applyForm(data, form)

	if form.Valid() {
		err := h.Public.SubmitContact(r.Context(), content.ContactSubmission{
			Name:    form.Get("name"),
			Email:   form.Get("email"),
			Message: form.Raw("message"),
		})
		if err == nil {
			h.succeeded(w, r, "/contact", msgContactSent)
			return
		}
		h.logger().WarnContext(r.Context(), "contact submission failed", "error", err, "code", apperrors.GetCode(err))
		msg := apperrors.UserMessage(err, errMsgContactFailed)
		if msg == apperrors.DefaultFailureMessage {
			msg = errMsgContactFailed
		}
		data["FormError"] = msg
	}

	h.publicChrome(r, data, h.schoolInfo(r), seoSource{Title: "Contact Us"})
	h.renderPage(w, r, data)
}

// CMSPage renders a published page by slug. Any failure, including a backend
// 404, renders the not-found view with status 404.
// GET /pages/{slug}.
func (h *UIHandlers) CMSPage(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	page, err := h.Public.PageBySlug(r.Context(), slug)
	if err != nil || page == nil {
		if err != nil && !apperrors.IsNotFound(err) {
			h.logger().WarnContext(r.Context(), "page lookup failed", "slug", slug, "error", err)
		}
		h.NotFound(w, r)
		return
	}

	data := h.basePageData(r, PageMeta{Title: page.SEOTitle(), CurrentPage: PageCMSPage})
	h.publicChrome(r, data, h.schoolInfo(r), seoSource{
		Title:       page.SEOTitle(),
		Description: page.MetaDescription,
		Image:       page.CoverImage,
	})
	data["Page"] = page
	h.renderPage(w, r, data)
}
