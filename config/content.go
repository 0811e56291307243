package config

import (
	"fmt"
	"strings"
)

// RichContentPolicy controls how backend-supplied HTML is placed into pages.
type RichContentPolicy string

const (
	// RichContentTrusted renders backend HTML as-is. The backend contract is that
	// page and news content is sanitized before it is stored.
	RichContentTrusted RichContentPolicy = "trusted"
	// RichContentSanitize passes backend HTML through the allowlist sanitizer first.
	RichContentSanitize RichContentPolicy = "sanitize"
)

// UnmarshalText implements encoding.TextUnmarshaler for RichContentPolicy.
func (p *RichContentPolicy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "trusted", "sanitize":
		*p = RichContentPolicy(v)
		return nil
	default:
		return fmt.Errorf("invalid RichContentPolicy: %q (valid options: trusted, sanitize)", v)
	}
}

const (
	defaultNewsPageSize  = 6
	defaultHomeNewsLimit = 3
	defaultExcerptLength = 120
)

// ContentConfig holds public site presentation settings.
type ContentConfig struct {
	// RichContent selects the rich content trust policy.
	RichContent RichContentPolicy `env:"RICH_CONTENT_POLICY" envDefault:"trusted"`

	// SEO defaults used when neither the record nor school info supplies a value.
	SiteName        string `env:"SITE_NAME"        envDefault:"General Montessori Academy"`
	SiteDescription string `env:"SITE_DESCRIPTION" envDefault:"A modern starter school focused on excellence and growth."`
	SiteKeywords    string `env:"SITE_KEYWORDS"    envDefault:"school, education, learning"`

	// NewsPageSize is the number of news cards per public listing page.
	NewsPageSize int `env:"NEWS_PAGE_SIZE" envDefault:"6"`

	// HomeNewsLimit is the number of latest news items on the home page.
	HomeNewsLimit int `env:"HOME_NEWS_LIMIT" envDefault:"3"`

	// ExcerptLength is the rune length of news excerpts.
	ExcerptLength int `env:"EXCERPT_LENGTH" envDefault:"120"`
}

// Sanitize applies guardrails to content configuration values.
func (c *ContentConfig) Sanitize() {
	if c.RichContent == "" {
		c.RichContent = RichContentTrusted
	}
	if c.NewsPageSize <= 0 {
		c.NewsPageSize = defaultNewsPageSize
	}
	if c.HomeNewsLimit <= 0 {
		c.HomeNewsLimit = defaultHomeNewsLimit
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = defaultExcerptLength
	}
	c.SiteName = strings.TrimSpace(c.SiteName)
}
