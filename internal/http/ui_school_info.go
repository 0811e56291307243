package httpx

import (
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

const msgSchoolInfoSaved = "School information updated successfully"

func schoolInfoMeta() PageMeta {
	return PageMeta{Title: "School Information", PageTitle: "School Information", CurrentPage: PageSchoolInfo}
}

func schoolInfoValues(info *content.SchoolInfo) map[string]string {
	if info == nil {
		return map[string]string{}
	}
	return map[string]string{
		"schoolName":      info.SchoolName,
		"address":         info.Address,
		"phone":           info.Phone,
		"email":           info.Email,
		"about":           info.About,
		"metaTitle":       info.MetaTitle,
		"metaDescription": info.MetaDescription,
		"metaKeywords":    info.KeywordsString(),
		"canonicalUrl":    info.CanonicalURL,
		"ogImage":         info.OGImage,
	}
}

// SchoolInfoPage renders the school profile form, pre-filled when a profile exists.
// GET /admin/school-info.
func (h *UIHandlers) SchoolInfoPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, schoolInfoMeta())
	info, err := h.SchoolInfo.Get(r.Context())
	if err != nil {
		if h.fetchFailed(w, r, data, err) {
			return
		}
		info = nil
	}
	data["Info"] = info
	data["Values"] = schoolInfoValues(info)
	h.renderPage(w, r, data)
}

// SaveSchoolInfo creates or replaces the school profile.
// POST /admin/school-info.
func (h *UIHandlers) SaveSchoolInfo(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, schoolInfoMeta())
	form := readForm(r, content.SchoolInfoSchema)
	applyForm(data, form)

	if !form.Valid() {
		h.renderPage(w, r, data)
		return
	}

	err := h.SchoolInfo.Upsert(r.Context(), content.SchoolInfoInput{
		SchoolName:      form.Get("schoolName"),
		Address:         form.Get("address"),
		Phone:           form.Get("phone"),
		Email:           form.Get("email"),
		About:           form.Raw("about"),
		MetaTitle:       form.Get("metaTitle"),
		MetaDescription: form.Get("metaDescription"),
		MetaKeywords:    content.SplitKeywords(form.Raw("metaKeywords")),
		CanonicalURL:    form.Get("canonicalUrl"),
		OGImage:         form.Get("ogImage"),
		Logo:            form.Attachment,
	})
	if err != nil {
		if h.mutationFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	h.succeeded(w, r, "/admin/school-info", msgSchoolInfoSaved)
}
