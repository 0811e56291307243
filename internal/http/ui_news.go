package httpx

import (
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

func adminNewsMeta() PageMeta {
	return PageMeta{Title: "News", PageTitle: "News Management", CurrentPage: PageAdminNews}
}

func (h *UIHandlers) loadNews(w http.ResponseWriter, r *http.Request, data map[string]any) bool {
	items, err := h.News.List(r.Context())
	if err != nil {
		if h.fetchFailed(w, r, data, err) {
			return false
		}
		items = []content.NewsItem{}
	}
	data["Items"] = items
	return true
}

// AdminNewsPage lists news items next to the create form.
// GET /admin/news.
func (h *UIHandlers) AdminNewsPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, adminNewsMeta())
	data["Values"] = map[string]string{"isPublished": "true"}
	if !h.loadNews(w, r, data) {
		return
	}
	h.renderPage(w, r, data)
}

// CreateNews publishes a news item. Without a cover image the payload is JSON.
// POST /admin/news.
func (h *UIHandlers) CreateNews(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, adminNewsMeta())
	form := readForm(r, content.NewsSchema)
	applyForm(data, form)

	if form.Valid() {
		err := h.News.Create(r.Context(), content.NewsInput{
			Title:       form.Get("title"),
			Content:     form.Raw("content"),
			IsPublished: form.Bool("isPublished"),
			Image:       form.Attachment,
		})
		if err == nil {
			h.succeeded(w, r, "/admin/news", "News item created.")
			return
		}
		if h.mutationFailed(w, r, data, err) {
			return
		}
	}

	if !h.loadNews(w, r, data) {
		return
	}
	h.renderPage(w, r, data)
}
