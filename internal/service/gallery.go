package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/api"
	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/ports"
)

const adminGalleryPath = "/admin/gallery"

// GalleryRepository manages gallery images through the admin API.
type GalleryRepository struct {
	client ports.APIClient
}

// NewGalleryRepository constructs a GalleryRepository over the authenticated client.
func NewGalleryRepository(client ports.APIClient) *GalleryRepository {
	return &GalleryRepository{client: client}
}

// List returns every gallery image.
func (r *GalleryRepository) List(ctx context.Context) ([]content.GalleryImage, error) {
	images, err := fetchList[content.GalleryImage](ctx, r.client, adminGalleryPath)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return images, nil
}

// Upload sends a new image. The body is always multipart; an upload without an
// image is rejected before any request is made.
func (r *GalleryRepository) Upload(ctx context.Context, in content.GalleryInput) error {
	if in.Image == nil || len(in.Image.Data) == 0 {
		return apperrors.ValidationField("image", "Please choose an image to upload.")
	}

	body := &api.Multipart{File: in.Image}
	body.Add("title", in.Title)

	if err := send(ctx, r.client, http.MethodPost, adminGalleryPath, body); err != nil {
		return fmt.Errorf("upload gallery image: %w", err)
	}
	return nil
}

// Delete removes a gallery image.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("gallery image ID is required")
	}
	if err := send(ctx, r.client, http.MethodDelete, resourcePath(adminGalleryPath, id), nil); err != nil {
		return fmt.Errorf("delete gallery image %s: %w", id, err)
	}
	return nil
}
