package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsItems(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{
			"_id":         fmt.Sprintf("n%d", i+1),
			"title":       fmt.Sprintf("Story %02d", i+1),
			"content":     "<p>Body</p>",
			"isPublished": true,
		}
	}
	return out
}

func TestHome_RendersSchoolNewsAndGallery(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /school-info", http.StatusOK, map[string]any{
		"schoolName":      "Riverside Primary",
		"about":           "We **love** learning.",
		"metaDescription": "Riverside Primary school",
		"metaKeywords":    []string{"riverside", "primary"},
	})
	h.api.JSON("GET /gallery", http.StatusOK, []map[string]any{{"_id": "g1", "title": "Sports day", "imageUrl": "https://cdn.example/g1.jpg"}})
	h.api.JSON("GET /news", http.StatusOK, newsItems(5))

	rec := h.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Riverside Primary</h1>")
	assert.Contains(t, body, "<strong>love</strong>")
	assert.Contains(t, body, "https://cdn.example/g1.jpg")
	assert.Contains(t, body, "Story 03")
	assert.NotContains(t, body, "Story 04", "home shows only the latest three")
	assert.Contains(t, body, `<meta name="description" content="Riverside Primary school">`)
	assert.Contains(t, body, `<meta name="keywords" content="riverside, primary">`)

	for _, r := range h.api.Requests() {
		assert.Empty(t, r.Authorization, "public pages never send credentials")
	}
}

func TestHome_AnyFailureFailsThePage(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /gallery", http.StatusOK, []any{})
	h.api.JSON("GET /news", http.StatusInternalServerError, nil)

	rec := h.get("/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to load content")
	assert.Contains(t, body, "No news yet.")
}

func TestNews_PaginatesSixPerPage(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /news", http.StatusOK, newsItems(8))

	first := h.get("/news")
	require.Equal(t, http.StatusOK, first.Code)
	body := first.Body.String()
	assert.Contains(t, body, "Story 06")
	assert.NotContains(t, body, "Story 07")
	assert.Contains(t, body, `<span class="btn disabled">Previous</span>`)
	assert.Contains(t, body, `href="/news?page=2">Next</a>`)

	second := h.get("/news?page=2")
	require.Equal(t, http.StatusOK, second.Code)
	body = second.Body.String()
	assert.Equal(t, 2, strings.Count(body, `class="card news-card"`))
	assert.Contains(t, body, "Story 08")
	assert.Contains(t, body, `href="/news?page=1">Previous</a>`)
	assert.Contains(t, body, `<span class="btn disabled">Next</span>`)
}

func TestNews_PageOutOfRangeClamps(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /news", http.StatusOK, newsItems(8))

	rec := h.get("/news?page=99")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Story 08")
}

func TestNews_SinglePageHidesControls(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /news", http.StatusOK, newsItems(2))

	rec := h.get("/news")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="pagination"`)
}

func TestGallery_Empty(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /gallery", http.StatusOK, []any{})

	rec := h.get("/gallery")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No images yet.")
}

func TestCMSPage_RendersBySlug(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /pages/admissions", http.StatusOK, map[string]any{
		"_id":             "p1",
		"title":           "Admissions",
		"slug":            "admissions",
		"content":         "<p>Apply <em>now</em></p>",
		"metaTitle":       "Admissions 2026",
		"metaDescription": "How to apply",
		"isPublished":     true,
	})
	h.api.JSON("GET /school-info", http.StatusOK, map[string]any{"schoolName": "Riverside", "canonicalUrl": "https://riverside.example/"})

	rec := h.get("/pages/admissions")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Admissions</h1>")
	assert.Contains(t, body, "<p>Apply <em>now</em></p>")
	assert.Contains(t, body, "<title>Admissions 2026</title>")
	assert.Contains(t, body, `<meta name="description" content="How to apply">`)
	assert.Contains(t, body, `<link rel="canonical" href="https://riverside.example/pages/admissions">`)
}

func TestCMSPage_UnknownSlugRendersNotFound(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /pages/missing", http.StatusNotFound, map[string]string{"message": "Page not found"})

	rec := h.get("/pages/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
	assert.Contains(t, rec.Body.String(), `href="/"`)
}

func TestCMSPage_BackendFailureRendersNotFound(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /pages/broken", http.StatusInternalServerError, nil)

	rec := h.get("/pages/broken")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestUnknownPublicPath(t *testing.T) {
	h := newUIHarness(t)

	rec := h.get("/no/such/place")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestContact_ShowsSchoolDetails(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /school-info", http.StatusOK, map[string]any{
		"schoolName": "Riverside", "address": "1 River Road", "phone": "555-0100", "email": "office@riverside.example",
	})

	rec := h.get("/contact")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"1 River Road", "555-0100", "mailto:office@riverside.example", "Send Message"}))
}

func TestContact_SubmitSuccess(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("POST /contact", http.StatusCreated, map[string]string{"message": "ok"})

	rec := h.post("/contact", url.Values{
		"name":    {"Pat Parent"},
		"email":   {"pat@example.com"},
		"message": {"Hello there"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact", rec.Header().Get("Location"))

	sent, ok := h.api.Last("POST /contact")
	require.True(t, ok)
	assert.Empty(t, sent.Authorization)
	assert.Equal(t, "Pat Parent", sent.JSON(t)["name"])
	assert.Equal(t, "Hello there", sent.JSON(t)["message"])

	page := h.get("/contact", followFlash(rec))
	assert.Contains(t, page.Body.String(), "Message sent successfully!")
	assert.NotContains(t, page.Body.String(), "Hello there", "form is cleared after sending")
}

func TestContact_SubmitFailureKeepsInput(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		message string
	}{
		{name: "backend message", status: http.StatusBadRequest, body: map[string]string{"message": "Too many messages today"}, message: "Too many messages today"},
		{name: "no message", status: http.StatusInternalServerError, message: "Failed to send message. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newUIHarness(t)
			h.api.JSON("POST /contact", tt.status, tt.body)

			rec := h.post("/contact", url.Values{
				"name":    {"Pat Parent"},
				"email":   {"pat@example.com"},
				"message": {"Hello there"},
			})

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, tt.message)
			assert.Contains(t, body, "Hello there")
			assert.Contains(t, body, `value="Pat Parent"`)
		})
	}
}

func TestContact_ValidationSkipsBackend(t *testing.T) {
	h := newUIHarness(t)

	rec := h.post("/contact", url.Values{"name": {"Pat"}, "email": {"not-an-email"}, "message": {""}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), errMsgFixBelow)
	assert.Equal(t, 0, h.api.Count("POST /contact"))
}

func TestContact_RequiresCSRF(t *testing.T) {
	h := newUIHarness(t)

	rec := h.do(newFormRequest("/contact", url.Values{"name": {"Pat"}}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, h.api.Count("POST /contact"))
}

func TestPublicPages_UseSiteDefaultsWithoutProfile(t *testing.T) {
	h := newUIHarness(t)
	h.api.JSON("GET /gallery", http.StatusOK, []any{})

	rec := h.get("/gallery")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, testSiteName)
	assert.Contains(t, body, `<meta name="description" content="A modern starter school.">`)
	assert.Contains(t, body, `<meta name="keywords" content="school, education">`)
}
