package content

// FieldKind tells form handling how to read a submitted value.
type FieldKind int

const (
	// KindText is a single-line or multi-line string.
	KindText FieldKind = iota
	// KindBool is a checkbox; absent means false.
	KindBool
	// KindEmail is a string that must look like an email address.
	KindEmail
	// KindURL is a string that must be an absolute http(s) URL.
	KindURL
	// KindList is a comma separated list.
	KindList
	// KindSecret is a password; never echoed back into a re-rendered form.
	KindSecret
)

// FieldSpec describes one form field of a resource.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	MaxLen   int
}

// AttachmentSpec describes the single binary field a resource form may carry.
type AttachmentSpec struct {
	Field    string
	Label    string
	Required bool
}

// Schema lists what a resource form accepts, checked before anything is sent.
type Schema struct {
	Resource   string
	Fields     []FieldSpec
	Attachment *AttachmentSpec
}

// Field returns the spec for name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// MaxAttachmentBytes bounds uploaded images.
const MaxAttachmentBytes = 10 << 20

var (
	// PageSchema is the CMS page form.
	PageSchema = Schema{
		Resource: "page",
		Fields: []FieldSpec{
			{Name: "title", Label: "Title", Required: true, MaxLen: 200},
			{Name: "content", Label: "Content", Required: true},
			{Name: "metaTitle", Label: "Meta title", MaxLen: 70},
			{Name: "metaDescription", Label: "Meta description", MaxLen: 300},
			{Name: "isPublished", Label: "Published", Kind: KindBool},
		},
		Attachment: &AttachmentSpec{Field: "image", Label: "Cover image"},
	}

	// NewsSchema is the news item form.
	NewsSchema = Schema{
		Resource: "news",
		Fields: []FieldSpec{
			{Name: "title", Label: "Title", Required: true, MaxLen: 200},
			{Name: "content", Label: "Content", Required: true},
			{Name: "isPublished", Label: "Published", Kind: KindBool},
		},
		Attachment: &AttachmentSpec{Field: "image", Label: "Cover image"},
	}

	// GallerySchema is the gallery upload form; the image is mandatory.
	GallerySchema = Schema{
		Resource: "gallery",
		Fields: []FieldSpec{
			{Name: "title", Label: "Title", MaxLen: 200},
		},
		Attachment: &AttachmentSpec{Field: "image", Label: "Image", Required: true},
	}

	// SchoolInfoSchema is the school profile form.
	SchoolInfoSchema = Schema{
		Resource: "school-info",
		Fields: []FieldSpec{
			{Name: "schoolName", Label: "School name", Required: true, MaxLen: 200},
			{Name: "address", Label: "Address", MaxLen: 500},
			{Name: "phone", Label: "Phone", MaxLen: 50},
			{Name: "email", Label: "Email", Kind: KindEmail},
			{Name: "about", Label: "About"},
			{Name: "metaTitle", Label: "Meta title", MaxLen: 70},
			{Name: "metaDescription", Label: "Meta description", MaxLen: 300},
			{Name: "metaKeywords", Label: "Meta keywords", Kind: KindList},
			{Name: "canonicalUrl", Label: "Canonical URL", Kind: KindURL},
			{Name: "ogImage", Label: "Open Graph image URL", Kind: KindURL},
		},
		Attachment: &AttachmentSpec{Field: "logo", Label: "Logo"},
	}

	// ContactSchema is the public contact form.
	ContactSchema = Schema{
		Resource: "contact",
		Fields: []FieldSpec{
			{Name: "name", Label: "Name", Required: true, MaxLen: 100},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "message", Label: "Message", Required: true, MaxLen: 5000},
		},
	}

	// LoginSchema is the admin sign-in form.
	LoginSchema = Schema{
		Resource: "login",
		Fields: []FieldSpec{
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: KindSecret, Required: true},
		},
	}

	// ForgotPasswordSchema requests a reset email.
	ForgotPasswordSchema = Schema{
		Resource: "forgot-password",
		Fields: []FieldSpec{
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
		},
	}

	// ResetPasswordSchema completes a reset with the emailed token.
	ResetPasswordSchema = Schema{
		Resource: "reset-password",
		Fields: []FieldSpec{
			{Name: "token", Label: "Reset token", Required: true},
			{Name: "newPassword", Label: "New password", Kind: KindSecret, Required: true},
		},
	}

	// ChangePasswordSchema changes the signed-in admin's password.
	ChangePasswordSchema = Schema{
		Resource: "change-password",
		Fields: []FieldSpec{
			{Name: "currentPassword", Label: "Current password", Kind: KindSecret, Required: true},
			{Name: "newPassword", Label: "New password", Kind: KindSecret, Required: true},
		},
	}

	// AddAdminSchema adds another administrator.
	AddAdminSchema = Schema{
		Resource: "add-admin",
		Fields: []FieldSpec{
			{Name: "name", Label: "Name", Required: true, MaxLen: 100},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: KindSecret, Required: true},
		},
	}
)
