package viewmodel

// User represents the signed-in administrator exposed to templates.
type User struct {
	Name  string
	Email string
	Role  string
}

// SEO carries the document head metadata of a page.
type SEO struct {
	Title        string
	Description  string
	Keywords     string
	CanonicalURL string
	OGImage      string
}

// Flash is a one-shot notice carried across a redirect.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	SiteName        string
	IsAuthenticated bool
	IsAdmin         bool // renders the admin chrome instead of the public one
	User            *User
	SEO             SEO
	Flash           *Flash
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
