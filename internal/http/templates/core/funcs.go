// Package core provides the template helpers shared by every page.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/target/schoolsite-ui/internal/http/richtext"
	"github.com/target/schoolsite-ui/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	RichText           *richtext.Renderer
	ExcerptLength      int
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	rt := deps.RichText
	if rt == nil {
		rt = richtext.New(richtext.PolicySanitize)
	}
	excerptLen := deps.ExcerptLength
	if excerptLen <= 0 {
		excerptLen = 120
	}

	funcs := template.FuncMap{
		"friendlyTime": timeFormatter(uiutil.FormatFriendlyDateTime),
		"friendlyDate": timeFormatter(uiutil.FormatFriendlyDate),
		"timeTag":      createTimeTagFunc(),
		"formatNumber": formatNumberTemplate,
		"truncateText": TruncateText,
		"richHTML":     rt.HTML,
		"markdown":     rt.Markdown,
		"excerpt":      func(raw string) string { return richtext.Excerpt(raw, excerptLen) },
		"dict":         dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}
}

func toTime(ts any) time.Time {
	switch v := ts.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func timeFormatter(format func(time.Time) string) func(any) string {
	return func(ts any) string {
		return format(toTime(ts))
	}
}

func createTimeTagFunc() func(any) template.HTML {
	return func(ts any) template.HTML {
		t0 := toTime(ts)
		if t0.IsZero() {
			return ""
		}
		friendly := uiutil.FormatFriendlyDate(t0)
		dt := t0.UTC().Format(time.RFC3339)
		title := t0.Local().Format(time.RFC1123)
		// #nosec G203 - constructed from trusted, escaped values only
		return template.HTML(
			fmt.Sprintf(
				"<time datetime=\"%s\" title=\"%s\">%s</time>",
				dt,
				template.HTMLEscapeString(title),
				template.HTMLEscapeString(friendly),
			),
		)
	}
}

// dict builds a map from alternating key/value arguments for partial templates.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict expects key/value pairs")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// formatNumberTemplate formats an integer with comma separators for thousands.
func formatNumberTemplate(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case int32:
		n = int64(x)
	default:
		return fmt.Sprint(v)
	}

	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)

	var b strings.Builder
	prefix := len(s) % 3
	if prefix == 0 {
		prefix = 3
	}
	b.WriteString(s[:prefix])
	for i := prefix; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
// Adds an ellipsis (…) when truncated.
// The maxLen parameter can be any numeric type for template flexibility.
func TruncateText(s string, maxLen any) string {
	n, ok := toIntSafe(maxLen)
	if !ok || n <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, n)
}

func toIntSafe(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	default:
		return 0, false
	}
}
