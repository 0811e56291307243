package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

func pagesMeta() PageMeta {
	return PageMeta{Title: "Pages", PageTitle: "Pages CMS", CurrentPage: PageAdminPages}
}

// pageFormValues pre-fills the page form from an existing record.
func pageFormValues(p content.Page) map[string]string {
	return map[string]string{
		"title":           p.Title,
		"content":         p.Content,
		"metaTitle":       p.MetaTitle,
		"metaDescription": p.MetaDescription,
		"isPublished":     boolValue(p.IsPublished),
	}
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return ""
}

func findPage(pages []content.Page, id string) *content.Page {
	for i := range pages {
		if pages[i].ID == id {
			return &pages[i]
		}
	}
	return nil
}

// setFormTarget records where the resource form posts and whether it edits.
func setFormTarget(data map[string]any, listPath, editID string) {
	data["EditID"] = editID
	if editID == "" {
		data["FormMode"] = FormModeCreate
		data["FormAction"] = listPath
		return
	}
	data["FormMode"] = FormModeEdit
	data["FormAction"] = listPath + "/" + editID
}

// loadPages fetches the list into data. It returns false when the session ended.
func (h *UIHandlers) loadPages(w http.ResponseWriter, r *http.Request, data map[string]any) ([]content.Page, bool) {
	pages, err := h.Pages.List(r.Context())
	if err != nil {
		if h.fetchFailed(w, r, data, err) {
			return nil, false
		}
		pages = []content.Page{}
	}
	data["Items"] = pages
	data["Count"] = strconv.Itoa(len(pages))
	return pages, true
}

// PagesPage lists CMS pages next to the create/edit form.
// GET /admin/pages[?edit={id}].
func (h *UIHandlers) PagesPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, pagesMeta())
	pages, ok := h.loadPages(w, r, data)
	if !ok {
		return
	}

	editID := strings.TrimSpace(r.URL.Query().Get("edit"))
	if editing := findPage(pages, editID); editing != nil {
		data["Values"] = pageFormValues(*editing)
		data["Editing"] = editing
	} else {
		editID = ""
		data["Values"] = map[string]string{"isPublished": "true"}
	}
	setFormTarget(data, "/admin/pages", editID)
	h.renderPage(w, r, data)
}

// CreatePage creates a CMS page.
// POST /admin/pages.
func (h *UIHandlers) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.savePage(w, r, "")
}

// UpdatePage updates a CMS page.
// POST /admin/pages/{id}.
func (h *UIHandlers) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.NotFound(w, r)
		return
	}
	h.savePage(w, r, id)
}

func (h *UIHandlers) savePage(w http.ResponseWriter, r *http.Request, id string) {
	data := h.basePageData(r, pagesMeta())
	form := readForm(r, content.PageSchema)
	applyForm(data, form)

	if form.Valid() {
		in := content.PageInput{
			Title:           form.Get("title"),
			Content:         form.Raw("content"),
			MetaTitle:       form.Get("metaTitle"),
			MetaDescription: form.Get("metaDescription"),
			IsPublished:     form.Bool("isPublished"),
			Image:           form.Attachment,
		}

		var err error
		msg := "Page created."
		if id == "" {
			err = h.Pages.Create(r.Context(), in)
		} else {
			err = h.Pages.Update(r.Context(), id, in)
			msg = "Page updated."
		}
		if err == nil {
			h.succeeded(w, r, "/admin/pages", msg)
			return
		}
		if h.mutationFailed(w, r, data, err) {
			return
		}
	}

	// Re-fetch the list and keep the submitted values in the form.
	if _, ok := h.loadPages(w, r, data); !ok {
		return
	}
	setFormTarget(data, "/admin/pages", id)
	h.renderPage(w, r, data)
}
