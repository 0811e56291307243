// Package richtext places backend-supplied rich content into rendered pages.
//
// Page and news bodies arrive from the backend as HTML. Under PolicyTrusted they
// are emitted as-is; the backend is responsible for sanitizing them on write.
// Under PolicySanitize they pass through an allowlist filter first.
package richtext

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Policy selects how backend HTML is trusted.
type Policy string

const (
	// PolicyTrusted renders backend HTML unchanged.
	PolicyTrusted Policy = "trusted"
	// PolicySanitize strips everything outside the formatting allowlist.
	PolicySanitize Policy = "sanitize"
)

// Renderer converts backend content into template-safe HTML.
type Renderer struct {
	policy Policy
	md     goldmark.Markdown
}

// New returns a Renderer for policy. Unknown policies behave like PolicySanitize.
func New(policy Policy) *Renderer {
	if policy != PolicyTrusted {
		policy = PolicySanitize
	}
	return &Renderer{
		policy: policy,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

// Policy reports the active policy.
func (r *Renderer) Policy() Policy { return r.policy }

// HTML returns raw as markup according to the policy.
func (r *Renderer) HTML(raw string) template.HTML {
	if r.policy == PolicyTrusted {
		// #nosec G203 - backend content is sanitized on write under the trusted policy.
		return template.HTML(raw)
	}
	// #nosec G203 - output is rebuilt from allowlisted nodes only.
	return template.HTML(Sanitize(raw))
}

// Markdown renders plain school text (the "about" field) as Markdown.
// Raw HTML inside the text is omitted and dangerous link schemes are dropped.
func (r *Renderer) Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	// #nosec G203 - goldmark's safe renderer escapes text and omits raw HTML.
	return template.HTML(buf.String())
}

var fragmentContext = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

func parseFragment(raw string) []*html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(raw), fragmentContext)
	if err != nil {
		return nil
	}
	return nodes
}

// PlainText strips markup and collapses whitespace.
func PlainText(raw string) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			if droppedTags[n.DataAtom] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range parseFragment(raw) {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt returns the first n runes of the plain text of raw followed by "...".
// Empty content yields an empty excerpt.
func Excerpt(raw string, n int) string {
	text := PlainText(raw)
	if text == "" {
		return ""
	}
	if n > 0 && utf8.RuneCountInString(text) > n {
		text = string([]rune(text)[:n])
	}
	return strings.TrimRight(text, " ") + "..."
}
