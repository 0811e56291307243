package httpx

import (
	"net/http"
	"strings"
)

// NotFound renders the not-found view with status 404, inside the admin
// chrome for signed-in /admin paths and the public chrome otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Page Not Found", PageTitle: "Page Not Found", CurrentPage: PageNotFound}
	data := h.basePageData(r, meta)
	data["RequestPath"] = r.URL.Path

	if strings.HasPrefix(r.URL.Path, "/admin") && GetSessionFromContext(r.Context()) != nil {
		data["IsAdmin"] = true
		data["BackHref"] = PathDashboard
	} else {
		data["BackHref"] = "/"
	}

	if h.T == nil {
		http.NotFound(w, r)
		return
	}
	h.renderPageStatus(w, r, data, http.StatusNotFound)
}

// ServerError renders the generic error view for unexpected failures.
func (h *UIHandlers) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	if h.T == nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	data := h.basePageData(r, PageMeta{Title: "Error"})
	data["Code"] = http.StatusInternalServerError
	data["Message"] = errMsgLoadFailed
	if h.IsDev && err != nil {
		data["Detail"] = err.Error()
	}
	if rerr := h.T.RenderError(w, r, data); rerr != nil {
		h.logAndRenderTemplateError(w, r, rerr, "error page")
	}
}
