package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/target/schoolsite-ui/internal/domain/content"
	apperrors "github.com/target/schoolsite-ui/internal/errors"
	"github.com/target/schoolsite-ui/internal/ports"
)

const adminSchoolInfoPath = "/admin/school-info"

// SchoolInfoRepository reads and upserts the singleton school profile.
type SchoolInfoRepository struct {
	client ports.APIClient
}

// NewSchoolInfoRepository constructs a SchoolInfoRepository over the authenticated client.
func NewSchoolInfoRepository(client ports.APIClient) *SchoolInfoRepository {
	return &SchoolInfoRepository{client: client}
}

// Get returns the school profile, or nil when none has been saved yet.
func (r *SchoolInfoRepository) Get(ctx context.Context) (*content.SchoolInfo, error) {
	resp, err := get(ctx, r.client, adminSchoolInfoPath)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get school info: %w", err)
	}
	return decodeRecord[content.SchoolInfo](resp.Body)
}

// Upsert creates or replaces the school profile. The body is multipart only when a logo is attached.
func (r *SchoolInfoRepository) Upsert(ctx context.Context, in content.SchoolInfoInput) error {
	keywords := in.MetaKeywords
	if keywords == nil {
		keywords = []string{}
	}

	body := formBody([]formValue{
		{"schoolName", in.SchoolName},
		{"address", in.Address},
		{"phone", in.Phone},
		{"email", in.Email},
		{"about", in.About},
		{"metaTitle", in.MetaTitle},
		{"metaDescription", in.MetaDescription},
		{"metaKeywords", keywords},
		{"canonicalUrl", in.CanonicalURL},
		{"ogImage", in.OGImage},
	}, in.Logo)

	if err := send(ctx, r.client, http.MethodPost, adminSchoolInfoPath, body); err != nil {
		return fmt.Errorf("save school info: %w", err)
	}
	return nil
}
