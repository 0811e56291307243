package core

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/schoolsite-ui/internal/http/richtext"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumberTemplate(0))
	assert.Equal(t, "999", formatNumberTemplate(999))
	assert.Equal(t, "1,000", formatNumberTemplate(1000))
	assert.Equal(t, "-12,345,678", formatNumberTemplate(int64(-12345678)))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", 10))
	assert.Equal(t, "hel…", TruncateText("hello", 3))
	assert.Equal(t, "hello", TruncateText("hello", "x"))
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = dict("a")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}

func TestFuncs_InTemplate(t *testing.T) {
	var tmpl *template.Template
	funcs := Funcs(Deps{
		Template:           &tmpl,
		ContentTemplateFor: func(p string) string { return p + "-content" },
		RichText:           richtext.New(richtext.PolicySanitize),
		ExcerptLength:      5,
	})
	tmpl = template.Must(template.New("root").Funcs(funcs).Parse(
		`{{define "x-content"}}[{{.}}]{{end}}` +
			`{{richHTML .Body}}|{{excerpt .Body}}|{{renderSection "x" "in"}}|{{friendlyDate .When}}`))

	var buf bytes.Buffer
	when := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	err := tmpl.ExecuteTemplate(&buf, "root", map[string]any{
		"Body": `<p>Hello world</p><script>x()</script>`,
		"When": &when,
	})
	require.NoError(t, err)

	parts := strings.Split(buf.String(), "|")
	require.Len(t, parts, 4)
	assert.Equal(t, "<p>Hello world</p>", parts[0])
	assert.Equal(t, "Hello...", parts[1])
	assert.Equal(t, "[in]", parts[2])
	assert.Equal(t, "September 1, 2026", parts[3])
}

func TestFuncs_TimestampsAndTitles(t *testing.T) {
	tmpl := template.Must(template.New("root").Funcs(Funcs(Deps{})).Parse(
		`{{friendlyTime .When}}|{{friendlyTime .Missing}}|{{truncateText .Title 6}}`))

	var buf bytes.Buffer
	when := time.Date(2026, 9, 1, 15, 4, 0, 0, time.Local)
	err := tmpl.Execute(&buf, map[string]any{
		"When":    &when,
		"Missing": (*time.Time)(nil),
		"Title":   "Admissions and enrolment",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sep 1, 2026 3:04 PM||Admiss…", buf.String())
}
