package httpx

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/target/schoolsite-ui/internal/domain/api"
	"github.com/target/schoolsite-ui/internal/domain/content"
	"github.com/target/schoolsite-ui/internal/http/validation"
)

const (
	// maxFormBytes bounds a whole form body: one attachment plus its text fields.
	maxFormBytes = content.MaxAttachmentBytes + 1<<20
	// multipartMemory is how much of a multipart body is held in memory before spilling to disk.
	multipartMemory = 12 << 20
)

// submittedForm is a parsed resource form. Values holds every non-secret schema
// field as text; checkbox fields read "true" or "". Passwords live in secrets so
// they are never rendered back into a form.
type submittedForm struct {
	Values     map[string]string
	Attachment *api.Attachment
	Errors     map[string]string
	secrets    map[string]string
}

// Valid reports whether the form passed validation.
func (f *submittedForm) Valid() bool { return len(f.Errors) == 0 }

// Bool reads a checkbox field.
func (f *submittedForm) Bool(name string) bool { return f.Values[name] == "true" }

// Get reads a text field with surrounding whitespace removed.
func (f *submittedForm) Get(name string) string { return strings.TrimSpace(f.Values[name]) }

// Raw reads a field exactly as submitted.
func (f *submittedForm) Raw(name string) string { return f.Values[name] }

// readForm parses r against schema and validates it. Secrets are never echoed
// back into the form values shown on a re-render.
func readForm(r *http.Request, schema content.Schema) *submittedForm {
	form := &submittedForm{Values: map[string]string{}, Errors: map[string]string{}, secrets: map[string]string{}}

	if err := parseRequestForm(r); err != nil {
		form.Errors["_form"] = formParseMessage(err)
		return form
	}

	all := make(map[string]string, len(schema.Fields))
	for _, f := range schema.Fields {
		v := r.PostFormValue(f.Name)
		switch f.Kind {
		case content.KindBool:
			v = ""
			if checkboxOn(r.PostFormValue(f.Name)) {
				v = "true"
			}
			form.Values[f.Name] = v
		case content.KindSecret:
			form.secrets[f.Name] = v
		default:
			form.Values[f.Name] = v
		}
		all[f.Name] = v
	}

	fv := validation.Schema(schema, all)

	if spec := schema.Attachment; spec != nil {
		att, err := readAttachment(r, spec.Field)
		switch {
		case err != nil:
			fv.Add(spec.Field, err.Error())
		case att == nil && spec.Required:
			fv.Add(spec.Field, "Please choose an image to upload.")
		default:
			form.Attachment = att
		}
	}

	for k, v := range fv.Errors() {
		form.Errors[k] = v
	}
	return form
}

// Secret reads a password field exactly as submitted.
func (f *submittedForm) Secret(name string) string { return f.secrets[name] }

func checkboxOn(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// parseRequestForm parses the body unless the CSRF middleware already did.
func parseRequestForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if r.MultipartForm != nil {
			return nil
		}
		return r.ParseMultipartForm(multipartMemory)
	}
	if r.PostForm != nil {
		return nil
	}
	return r.ParseForm()
}

func formParseMessage(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "The upload is too large. Images must be 10 MB or smaller."
	}
	return "The form could not be read. Please try again."
}

var errNotImage = errors.New("Please choose an image file (JPEG, PNG, GIF or WebP).") //nolint:staticcheck // shown to users verbatim

// readAttachment returns the uploaded file for field, or nil when none was chosen.
// The content type is sniffed from the bytes, never taken from the browser.
func readAttachment(r *http.Request, field string) (*api.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil, nil
	}
	fh := headers[0]
	if fh.Size > content.MaxAttachmentBytes {
		return nil, errors.New("The image is too large. Images must be 10 MB or smaller.") //nolint:staticcheck // user-facing
	}

	data, err := readFileHeader(fh)
	if err != nil {
		return nil, errors.New("The image could not be read. Please try again.") //nolint:staticcheck // user-facing
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errNotImage
	}

	return &api.Attachment{
		Field:       field,
		FileName:    filepath.Base(fh.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, content.MaxAttachmentBytes+1))
}
