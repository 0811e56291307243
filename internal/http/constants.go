package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	// Public site.
	PageHome     = "home"
	PageNews     = "news"
	PageGallery  = "gallery"
	PageContact  = "contact"
	PageCMSPage  = "cms-page"
	PageNotFound = "not-found"
	PageLogin    = "login"
	PageForgot   = "forgot-password"
	PageReset    = "reset-password"

	// Admin area.
	PageDashboard     = "dashboard"
	PageAdminPages    = "admin-pages"
	PageAdminNews     = "admin-news"
	PageAdminGallery  = "admin-gallery"
	PageAdminMessages = "admin-messages"
	PageAdminMessage  = "admin-message"
	PageSchoolInfo    = "admin-school-info"
	PageConfirmDelete = "confirm-delete"
	PagePassword      = "account-password"
	PageAddAdmin      = "account-admins"
)

// Route paths referenced from more than one handler.
const (
	PathLogin     = "/admin/login"
	PathDashboard = "/admin/dashboard"
)

// Cookie names.
const (
	SessionCookieName = "session_id"
	FlashCookieName   = "flash"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:          "home-content",
	PageNews:          "news-content",
	PageGallery:       "gallery-content",
	PageContact:       "contact-content",
	PageCMSPage:       "cms-page-content",
	PageNotFound:      "not-found-content",
	PageLogin:         "login-content",
	PageForgot:        "forgot-password-content",
	PageReset:         "reset-password-content",
	PageDashboard:     "dashboard-content",
	PageAdminPages:    "admin-pages-content",
	PageAdminNews:     "admin-news-content",
	PageAdminGallery:  "admin-gallery-content",
	PageAdminMessages: "admin-messages-content",
	PageAdminMessage:  "admin-message-content",
	PageSchoolInfo:    "admin-school-info-content",
	PageConfirmDelete: "confirm-delete-content",
	PagePassword:      "account-password-content",
	PageAddAdmin:      "account-admins-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to not-found-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "not-found-content"
}

// adminPage reports whether page renders inside the admin chrome.
func adminPage(page string) bool {
	switch page {
	case PageDashboard, PageAdminPages, PageAdminNews, PageAdminGallery, PageAdminMessages,
		PageAdminMessage, PageSchoolInfo, PageConfirmDelete, PagePassword, PageAddAdmin:
		return true
	default:
		return false
	}
}
