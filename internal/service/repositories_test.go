package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/schoolsite-ui/internal/domain/api"
	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
)

func pngAttachment(field string) *api.Attachment {
	return &api.Attachment{Field: field, FileName: "photo.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n")}
}

func TestPageRepository_CRUD(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /admin/pages", http.StatusOK, []map[string]any{
		{"_id": "p1", "title": "About", "slug": "about", "isPublished": true},
		{"_id": "p2", "title": "Draft", "slug": "draft"},
	})
	env.be.JSON("GET /admin/pages/about", http.StatusOK, map[string]any{"data": map[string]any{"_id": "p1", "title": "About"}})
	env.be.JSON("POST /admin/pages", http.StatusCreated, nil)
	env.be.JSON("PUT /admin/pages/p1", http.StatusOK, nil)
	env.be.JSON("DELETE /admin/pages/p1", http.StatusOK, nil)

	repo := NewPageRepository(env.admin)
	ctx := env.signedIn(t, "tok")

	pages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.True(t, pages[0].IsPublished)
	assert.False(t, pages[1].IsPublished)

	page, err := repo.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "p1", page.ID)

	require.NoError(t, repo.Create(ctx, content.PageInput{Title: "New", Content: "<p>x</p>", IsPublished: true}))
	created, _ := env.be.Last("POST /admin/pages")
	assert.False(t, created.IsMultipart())
	assert.Equal(t, true, created.JSON(t)["isPublished"])

	require.NoError(t, repo.Update(ctx, "p1", content.PageInput{Title: "About us", Content: "c", Image: pngAttachment("image")}))
	updated, _ := env.be.Last("PUT /admin/pages/p1")
	require.True(t, updated.IsMultipart())
	parts := updated.Multipart(t)
	assert.Equal(t, "About us", parts["title"].Value)
	assert.Equal(t, "false", parts["isPublished"].Value)
	assert.Equal(t, "photo.png", parts["image"].FileName)

	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.Equal(t, 1, env.be.Count("DELETE /admin/pages/p1"))

	for _, req := range env.be.Requests() {
		assert.Equal(t, "Bearer tok", req.Authorization, req.Method+" "+req.Path)
	}
}

func TestPageRepository_GetUnknown(t *testing.T) {
	env := newTestEnv(t)
	repo := NewPageRepository(env.admin)

	_, err := repo.Get(env.signedIn(t, "tok"), "nope")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repo.Get(context.Background(), "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestNewsRepository_CreateWithoutImageSendsJSON(t *testing.T) {
	env := newTestEnv(t)
	var items []map[string]any
	env.be.Handle("GET /admin/news", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, items)
	})
	env.be.Handle("POST /admin/news", func(w http.ResponseWriter, _ *http.Request) {
		items = append(items, map[string]any{"_id": "n1", "title": "Sports day"})
		w.WriteHeader(http.StatusCreated)
	})
	repo := NewNewsRepository(env.admin)
	ctx := env.signedIn(t, "tok")

	require.NoError(t, repo.Create(ctx, content.NewsInput{Title: "Sports day", Content: "<p>Fun</p>"}))

	req, _ := env.be.Last("POST /admin/news")
	assert.False(t, req.IsMultipart())
	assert.Equal(t, "application/json", req.ContentType)
	body := req.JSON(t)
	assert.Equal(t, "Sports day", body["title"])
	assert.Equal(t, false, body["isPublished"])

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sports day", list[0].Title)
}

func TestNewsRepository_CreateWithImageSendsMultipart(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("POST /admin/news", http.StatusCreated, nil)
	repo := NewNewsRepository(env.admin)

	require.NoError(t, repo.Create(env.signedIn(t, "tok"), content.NewsInput{
		Title: "Play", Content: "c", IsPublished: true, Image: pngAttachment("image"),
	}))
	req, _ := env.be.Last("POST /admin/news")
	require.True(t, req.IsMultipart())
	assert.Equal(t, "true", req.Multipart(t)["isPublished"].Value)
}

func TestGalleryRepository_UploadIsMultipart(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("POST /admin/gallery", http.StatusCreated, nil)
	env.be.JSON("GET /admin/gallery", http.StatusOK, map[string]any{
		"items": []map[string]string{{"_id": "g1", "imageUrl": "https://cdn.test/g1.png"}},
	})
	repo := NewGalleryRepository(env.admin)
	ctx := env.signedIn(t, "tok")

	require.NoError(t, repo.Upload(ctx, content.GalleryInput{Title: "Field trip", Image: pngAttachment("image")}))

	req, _ := env.be.Last("POST /admin/gallery")
	require.True(t, req.IsMultipart())
	parts := req.Multipart(t)
	assert.Equal(t, "Field trip", parts["title"].Value)
	assert.Equal(t, "image/png", parts["image"].ContentType)
	assert.Equal(t, []byte("\x89PNG\r\n"), parts["image"].Data)

	images, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.test/g1.png", images[0].ImageURL)
}

func TestGalleryRepository_UploadWithoutImage(t *testing.T) {
	env := newTestEnv(t)
	repo := NewGalleryRepository(env.admin)

	err := repo.Upload(env.signedIn(t, "tok"), content.GalleryInput{Title: "Nothing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "image", apperrors.GetField(err))
	assert.Empty(t, env.be.Requests())
}

func TestMessageRepository_ListAndDelete(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("GET /admin/messages", http.StatusOK, map[string]any{
		"data": []map[string]any{{"_id": "m1", "name": "Parent", "email": "p@home.test", "message": "Hi"}},
	})
	env.be.JSON("DELETE /admin/messages/m1", http.StatusOK, nil)
	repo := NewMessageRepository(env.admin)
	ctx := env.signedIn(t, "tok")

	msgs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Parent", msgs[0].Name)

	require.NoError(t, repo.Delete(ctx, "m1"))
	assert.Error(t, repo.Delete(ctx, ""))
}

func TestSchoolInfoRepository_GetAbsent(t *testing.T) {
	env := newTestEnv(t)
	repo := NewSchoolInfoRepository(env.admin)

	info, err := repo.Get(env.signedIn(t, "tok"))
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSchoolInfoRepository_Upsert(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("POST /admin/school-info", http.StatusOK, nil)
	repo := NewSchoolInfoRepository(env.admin)
	ctx := env.signedIn(t, "tok")

	in := content.SchoolInfoInput{
		SchoolName:   "General Montessori Academy",
		MetaKeywords: content.SplitKeywords(" montessori , school,, kids "),
	}
	require.NoError(t, repo.Upsert(ctx, in))
	req, _ := env.be.Last("POST /admin/school-info")
	assert.False(t, req.IsMultipart())
	assert.Equal(t, []any{"montessori", "school", "kids"}, req.JSON(t)["metaKeywords"])

	in.Logo = pngAttachment("logo")
	require.NoError(t, repo.Upsert(ctx, in))
	req, _ = env.be.Last("POST /admin/school-info")
	require.True(t, req.IsMultipart())
	assert.Equal(t, "photo.png", req.Multipart(t)["logo"].FileName)
	assert.Equal(t, 0, env.be.Count("PUT /admin/school-info"))
}

func TestRepository_ValidationMessageFromBackend(t *testing.T) {
	env := newTestEnv(t)
	env.be.JSON("POST /admin/pages", http.StatusBadRequest, map[string]string{"message": "Slug already exists"})
	repo := NewPageRepository(env.admin)

	err := repo.Create(env.signedIn(t, "tok"), content.PageInput{Title: "Dup", Content: "c"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Slug already exists", apperrors.UserMessage(err, ""))
}
