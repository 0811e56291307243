package content

import "github.com/target/schoolsite-ui/internal/domain/api"

// PageInput is the create/update payload for a CMS page.
type PageInput struct {
	Title           string
	Content         string
	MetaTitle       string
	MetaDescription string
	IsPublished     bool
	Image           *api.Attachment
}

// NewsInput is the create payload for a news item.
type NewsInput struct {
	Title       string
	Content     string
	IsPublished bool
	Image       *api.Attachment
}

// GalleryInput is the upload payload for a gallery image. Image is mandatory.
type GalleryInput struct {
	Title string
	Image *api.Attachment
}

// SchoolInfoInput is the upsert payload for the school profile.
type SchoolInfoInput struct {
	SchoolName      string
	Address         string
	Phone           string
	Email           string
	About           string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	CanonicalURL    string
	OGImage         string
	Logo            *api.Attachment
}

// Credentials are the admin login form values.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordReset completes a forgot-password flow with the emailed token.
type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// PasswordChange changes the signed-in admin's password.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// NewAdmin adds another administrator account.
type NewAdmin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
