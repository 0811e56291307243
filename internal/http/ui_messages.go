package httpx

import (
	"net/http"
	"strings"

	"github.com/target/schoolsite-ui/internal/domain/content"
	"github.com/target/schoolsite-ui/internal/http/uiutil"
)

const messagePreviewRunes = 60

// MessageRow is an inbox entry with its session read-state.
type MessageRow struct {
	content.Message
	Read    bool
	Preview string
}

func messagesMeta() PageMeta {
	return PageMeta{Title: "Messages", PageTitle: "Inbox", CurrentPage: PageAdminMessages}
}

// messageRows decorates messages with read-state held in the current session.
func (h *UIHandlers) messageRows(r *http.Request, msgs []content.Message) ([]MessageRow, int) {
	session := GetSessionFromContext(r.Context())
	rows := make([]MessageRow, 0, len(msgs))
	unread := 0
	for _, m := range msgs {
		read := m.IsRead || (session != nil && session.HasRead(m.ID))
		if !read {
			unread++
		}
		rows = append(rows, MessageRow{
			Message: m,
			Read:    read,
			Preview: uiutil.TruncateWithEllipsis(strings.TrimSpace(m.Message), messagePreviewRunes),
		})
	}
	return rows, unread
}

// MessagesPage lists contact messages, newest first as the backend returns them.
// GET /admin/messages.
func (h *UIHandlers) MessagesPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, messagesMeta())
	msgs, err := h.Messages.List(r.Context())
	if err != nil {
		if h.fetchFailed(w, r, data, err) {
			return
		}
		msgs = []content.Message{}
	}
	rows, unread := h.messageRows(r, msgs)
	data["Items"] = rows
	data["Unread"] = unread
	h.renderPage(w, r, data)
}

// MessagePage opens one message and marks it read for this session only.
// GET /admin/messages/{id}.
func (h *UIHandlers) MessagePage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	data := h.basePageData(r, PageMeta{Title: "Message", PageTitle: "Inbox", CurrentPage: PageAdminMessage})

	msgs, err := h.Messages.List(r.Context())
	if err != nil {
		if h.fetchFailed(w, r, data, err) {
			return
		}
		h.renderPage(w, r, data)
		return
	}

	var found *content.Message
	for i := range msgs {
		if msgs[i].ID == id {
			found = &msgs[i]
			break
		}
	}
	if found == nil {
		h.NotFound(w, r)
		return
	}

	if err := h.Sessions.MarkRead(r.Context(), found.ID); err != nil {
		h.logger().WarnContext(r.Context(), "failed to mark message read", "message_id", found.ID, "error", err)
	}
	data["Message"] = MessageRow{Message: *found, Read: true}
	h.renderPage(w, r, data)
}
