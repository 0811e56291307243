package httpx

import (
	"context"
	"net/http"
	"strings"
)

// deleteTarget describes how one resource is deleted from the admin UI.
type deleteTarget struct {
	Noun     string
	Confirm  string
	ListPath string
	Done     string
	delete   func(h *UIHandlers, ctx context.Context, id string) error
}

//nolint:gochecknoglobals // static read-only lookup keyed by the URL segment
var deleteTargets = map[string]deleteTarget{
	"pages": {
		Noun:     "page",
		Confirm:  "Delete this page permanently?",
		ListPath: "/admin/pages",
		Done:     "Page deleted.",
		delete:   func(h *UIHandlers, ctx context.Context, id string) error { return h.Pages.Delete(ctx, id) },
	},
	"news": {
		Noun:     "news item",
		Confirm:  "Delete this news permanently?",
		ListPath: "/admin/news",
		Done:     "News item deleted.",
		delete:   func(h *UIHandlers, ctx context.Context, id string) error { return h.News.Delete(ctx, id) },
	},
	"gallery": {
		Noun:     "image",
		Confirm:  "Delete this image permanently?",
		ListPath: "/admin/gallery",
		Done:     "Image deleted.",
		delete:   func(h *UIHandlers, ctx context.Context, id string) error { return h.Gallery.Delete(ctx, id) },
	},
	"messages": {
		Noun:     "message",
		Confirm:  "Delete this message permanently?",
		ListPath: "/admin/messages",
		Done:     "Message deleted.",
		delete: func(h *UIHandlers, ctx context.Context, id string) error {
			if err := h.Messages.Delete(ctx, id); err != nil {
				return err
			}
			if err := h.Sessions.ForgetRead(ctx, id); err != nil {
				h.logger().WarnContext(ctx, "failed to forget message read-state", "message_id", id, "error", err)
			}
			return nil
		},
	},
}

func (h *UIHandlers) resolveDelete(w http.ResponseWriter, r *http.Request) (deleteTarget, string, bool) {
	target, ok := deleteTargets[r.PathValue("resource")]
	id := strings.TrimSpace(r.PathValue("id"))
	if !ok || id == "" {
		h.NotFound(w, r)
		return deleteTarget{}, "", false
	}
	return target, id, true
}

func confirmMeta(t deleteTarget) PageMeta {
	return PageMeta{Title: "Delete " + t.Noun, PageTitle: "Confirm delete", CurrentPage: PageConfirmDelete}
}

// ConfirmDelete asks before deleting. It makes no backend call; cancelling
// is a plain link back to the list.
// GET /admin/{resource}/{id}/delete.
func (h *UIHandlers) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	target, id, ok := h.resolveDelete(w, r)
	if !ok {
		return
	}
	data := h.basePageData(r, confirmMeta(target))
	data["Target"] = target
	data["Action"] = r.URL.Path
	data["ID"] = id
	h.renderPage(w, r, data)
}

// Delete removes the record and returns to its list without any edit reference.
// POST /admin/{resource}/{id}/delete.
func (h *UIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	target, id, ok := h.resolveDelete(w, r)
	if !ok {
		return
	}

	if err := target.delete(h, r.Context(), id); err != nil {
		data := h.basePageData(r, confirmMeta(target))
		data["Target"] = target
		data["Action"] = r.URL.Path
		data["ID"] = id
		if h.mutationFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	h.succeeded(w, r, target.ListPath, target.Done)
}
