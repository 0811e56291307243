package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
)

func newsFixture(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{"_id": fmt.Sprintf("n%d", i), "title": fmt.Sprintf("News %d", i), "isPublished": true}
	}
	return out
}

func TestPublicService_NewsPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		wantPage   int
		wantPages  int
		wantFirst  string
		wantLength int
	}{
		{name: "first page", total: 14, page: 1, wantPage: 1, wantPages: 3, wantFirst: "n0", wantLength: 6},
		{name: "last page remainder", total: 14, page: 3, wantPage: 3, wantPages: 3, wantFirst: "n12", wantLength: 2},
		{name: "beyond last clamps", total: 14, page: 9, wantPage: 3, wantPages: 3, wantFirst: "n12", wantLength: 2},
		{name: "below first clamps", total: 7, page: -1, wantPage: 1, wantPages: 2, wantFirst: "n0", wantLength: 6},
		{name: "exact multiple", total: 12, page: 2, wantPage: 2, wantPages: 2, wantFirst: "n6", wantLength: 6},
		{name: "empty", total: 0, page: 1, wantPage: 1, wantPages: 0, wantLength: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.be.JSON("GET /news", http.StatusOK, newsFixture(tt.total))
			svc := NewPublicService(PublicServiceOptions{Client: env.public})

			got, err := svc.News(context.Background(), tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Window.Page)
			assert.Equal(t, tt.wantPages, got.Window.TotalPages)
			require.Len(t, got.Items, tt.wantLength)
			if tt.wantLength > 0 {
				assert.Equal(t, tt.wantFirst, got.Items[0].ID)
			}
			assert.Equal(t, 1, env.be.Count("GET /news"), "the full list is fetched once, never paged remotely")
		})
	}
}

func TestPublicService_Home(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /news", http.StatusOK, newsFixture(5))
	env.be.JSON("GET /gallery", http.StatusOK, []map[string]string{{"_id": "g1", "imageUrl": "https://cdn.test/1.jpg"}})
	env.be.JSON("GET /school-info", http.StatusOK, map[string]any{"schoolName": "GMA"})
	svc := NewPublicService(PublicServiceOptions{Client: env.public})

	home, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GMA", home.SchoolInfo.SchoolName)
	assert.Len(t, home.Gallery, 1)
	require.Len(t, home.LatestNews, 3)
	assert.Equal(t, "n0", home.LatestNews[0].ID)

	for _, req := range env.be.Requests() {
		assert.Empty(t, req.Authorization)
	}
}

func TestPublicService_HomeFailure(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /news", http.StatusOK, newsFixture(1))
	env.be.JSON("GET /gallery", http.StatusInternalServerError, map[string]string{"error": "boom"})
	env.be.JSON("GET /school-info", http.StatusOK, map[string]any{"schoolName": "GMA"})
	svc := NewPublicService(PublicServiceOptions{Client: env.public})

	home, err := svc.Home(context.Background())
	assert.Nil(t, home)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestPublicService_HomeWithoutSchoolInfo(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /news", http.StatusOK, []any{})
	env.be.JSON("GET /gallery", http.StatusOK, []any{})
	svc := NewPublicService(PublicServiceOptions{Client: env.public, HomeNewsLimit: 2})

	home, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Nil(t, home.SchoolInfo)
	assert.Empty(t, home.LatestNews)
}

func TestPublicService_PageBySlug(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /pages/admissions", http.StatusOK, map[string]any{"_id": "p1", "title": "Admissions", "slug": "admissions"})
	svc := NewPublicService(PublicServiceOptions{Client: env.public})

	page, err := svc.PageBySlug(context.Background(), "admissions")
	require.NoError(t, err)
	assert.Equal(t, "Admissions", page.Title)

	_, err = svc.PageBySlug(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.PageBySlug(context.Background(), " ")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPublicService_SubmitContact(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("POST /contact", http.StatusCreated, map[string]string{"message": "Message sent successfully!"})
	svc := NewPublicService(PublicServiceOptions{Client: env.public})

	err := svc.SubmitContact(context.Background(), content.ContactSubmission{Name: " Pat ", Email: "pat@home.test", Message: "Hello"})
	require.NoError(t, err)

	req, _ := env.be.Last("POST /contact")
	body := req.JSON(t)
	assert.Equal(t, "Pat", body["name"])
	assert.Equal(t, "Hello", body["message"])

	err = svc.SubmitContact(context.Background(), content.ContactSubmission{Name: "Pat"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 1, env.be.Count("POST /contact"))
}
