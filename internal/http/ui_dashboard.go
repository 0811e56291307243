package httpx

import (
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

const errMsgUnableLoadStats = "Unable to load dashboard statistics."

// DashboardCard is one count tile linking to its management page.
type DashboardCard struct {
	Label string
	Count int
	Href  string
}

func dashboardCards(stats *content.DashboardStats) []DashboardCard {
	if stats == nil {
		return nil
	}
	return []DashboardCard{
		{Label: "Pages", Count: stats.Pages, Href: "/admin/pages"},
		{Label: "News", Count: stats.News, Href: "/admin/news"},
		{Label: "Gallery", Count: stats.Gallery, Href: "/admin/gallery"},
		{Label: "Messages", Count: stats.Messages, Href: "/admin/messages"},
	}
}

// DashboardPage serves the admin overview. Counts are shown together or not at all.
// GET /admin/dashboard.
func (h *UIHandlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, PageMeta{Title: "Dashboard", PageTitle: "Admin Dashboard", CurrentPage: PageDashboard})

	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		if h.sessionEnded(w, r, err) {
			return
		}
		h.logger().WarnContext(r.Context(), "dashboard stats failed", "error", err)
		markPageError(data, errMsgUnableLoadStats)
		stats = nil
	}

	data["Stats"] = stats
	data["Cards"] = dashboardCards(stats)
	h.renderPage(w, r, data)
}

// AdminIndex sends /admin to the dashboard.
func (h *UIHandlers) AdminIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
}
