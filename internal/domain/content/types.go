// Package content holds the school site's resource records as the backend returns them.
// The backend owns their shape and validation; these types carry only what pages display.
package content

import (
	"strings"
	"time"
)

// Page is a CMS page addressed publicly by slug.
type Page struct {
	ID              string     `json:"_id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	MetaTitle       string     `json:"metaTitle,omitempty"`
	MetaDescription string     `json:"metaDescription,omitempty"`
	CoverImage      string     `json:"coverImage,omitempty"`
	IsPublished     bool       `json:"isPublished"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// SEOTitle returns the meta title, falling back to the page title.
func (p Page) SEOTitle() string {
	if strings.TrimSpace(p.MetaTitle) != "" {
		return p.MetaTitle
	}
	return p.Title
}

// NewsItem is a news article or announcement.
type NewsItem struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage,omitempty"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// GalleryImage is an uploaded photo hosted by the backend's CDN.
type GalleryImage struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title,omitempty"`
	ImageURL  string     `json:"imageUrl"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Message is a contact form submission.
type Message struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// SchoolInfo is the singleton school profile, including site-wide SEO defaults.
type SchoolInfo struct {
	SchoolName      string   `json:"schoolName"`
	Address         string   `json:"address,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty"`
	About           string   `json:"about,omitempty"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	MetaKeywords    []string `json:"metaKeywords,omitempty"`
	CanonicalURL    string   `json:"canonicalUrl,omitempty"`
	OGImage         string   `json:"ogImage,omitempty"`
	Logo            string   `json:"logo,omitempty"`
}

// KeywordsString joins the meta keywords for a form field or meta tag.
func (s SchoolInfo) KeywordsString() string {
	return strings.Join(s.MetaKeywords, ", ")
}

// SplitKeywords splits a comma separated keyword list, trimming blanks.
func SplitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DashboardStats are the record counts shown on the admin dashboard.
type DashboardStats struct {
	Pages    int
	News     int
	Gallery  int
	Messages int
}

// ContactSubmission is what a visitor sends through the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
