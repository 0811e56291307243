package richtext

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var allowedTags = map[atom.Atom]bool{
	atom.A: true, atom.B: true, atom.Blockquote: true, atom.Br: true, atom.Code: true,
	atom.Div: true, atom.Em: true, atom.Figcaption: true, atom.Figure: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Hr: true, atom.I: true, atom.Img: true, atom.Li: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.S: true, atom.Span: true, atom.Strong: true, atom.Sub: true, atom.Sup: true,
	atom.Table: true, atom.Tbody: true, atom.Td: true, atom.Th: true, atom.Thead: true, atom.Tr: true,
	atom.U: true, atom.Ul: true,
}

// droppedTags are removed together with their content.
var droppedTags = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Iframe: true, atom.Object: true, atom.Embed: true,
	atom.Noscript: true, atom.Template: true, atom.Form: true, atom.Input: true, atom.Button: true,
	atom.Textarea: true, atom.Select: true, atom.Link: true, atom.Meta: true, atom.Base: true,
}

var allowedAttrs = map[string]bool{
	"href": true, "src": true, "alt": true, "title": true, "class": true,
	"colspan": true, "rowspan": true, "width": true, "height": true,
}

// Sanitize rebuilds raw keeping only allowlisted formatting elements and attributes.
// Elements outside the allowlist are unwrapped; scripts and embeds are removed with
// their content; URLs must be relative, http(s) or mailto.
func Sanitize(raw string) string {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range parseFragment(raw) {
		root.AppendChild(n)
	}
	cleanChildren(root)

	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}

func cleanChildren(parent *html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.CommentNode, html.DoctypeNode:
			parent.RemoveChild(c)
		case html.ElementNode:
			switch {
			case droppedTags[c.DataAtom]:
				parent.RemoveChild(c)
			case !allowedTags[c.DataAtom]:
				cleanChildren(c)
				for gc := c.FirstChild; gc != nil; gc = c.FirstChild {
					c.RemoveChild(gc)
					parent.InsertBefore(gc, c)
				}
				parent.RemoveChild(c)
			default:
				c.Attr = cleanAttrs(c.Attr)
				cleanChildren(c)
			}
		}
		c = next
	}
}

func cleanAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" || !allowedAttrs[key] {
			continue
		}
		if (key == "href" || key == "src") && !safeURL(a.Val) {
			continue
		}
		a.Key = key
		out = append(out, a)
	}
	return out
}

func safeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	default:
		return false
	}
}
