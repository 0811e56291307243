package httpx

import (
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

func adminGalleryMeta() PageMeta {
	return PageMeta{Title: "Gallery", PageTitle: "Gallery Manager", CurrentPage: PageAdminGallery}
}

func (h *UIHandlers) loadGallery(w http.ResponseWriter, r *http.Request, data map[string]any) bool {
	images, err := h.Gallery.List(r.Context())
	if err != nil {
		if h.fetchFailed(w, r, data, err) {
			return false
		}
		images = []content.GalleryImage{}
	}
	data["Items"] = images
	return true
}

// AdminGalleryPage lists uploaded images next to the upload form.
// GET /admin/gallery.
func (h *UIHandlers) AdminGalleryPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, adminGalleryMeta())
	if !h.loadGallery(w, r, data) {
		return
	}
	h.renderPage(w, r, data)
}

// UploadGalleryImage uploads one image. The request must be multipart and carry an image.
// POST /admin/gallery.
func (h *UIHandlers) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, adminGalleryMeta())
	form := readForm(r, content.GallerySchema)
	applyForm(data, form)

	if form.Valid() {
		err := h.Gallery.Upload(r.Context(), content.GalleryInput{
			Title: form.Get("title"),
			Image: form.Attachment,
		})
		if err == nil {
			h.succeeded(w, r, "/admin/gallery", "Image uploaded.")
			return
		}
		if h.mutationFailed(w, r, data, err) {
			return
		}
	}

	if !h.loadGallery(w, r, data) {
		return
	}
	h.renderPage(w, r, data)
}
