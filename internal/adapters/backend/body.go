package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/target/schoolsite-ui/internal/domain/api"
)

const contentTypeJSON = "application/json"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeBody returns the request body and its content type.
// A *api.Multipart becomes multipart/form-data, nil becomes no body, and
// anything else is encoded as JSON.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *api.Multipart:
		if b == nil {
			return nil, "", nil
		}
		return encodeMultipart(b)
	case api.Multipart:
		return encodeMultipart(&b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	}
}

func encodeMultipart(m *api.Multipart) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if m.File != nil {
		if err := writeFile(w, m.File); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, f *api.Attachment) error {
	if f.Field == "" {
		return errors.New("attachment field name is required")
	}

	fileName := f.FileName
	if fileName == "" {
		fileName = f.Field
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.Field), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part %s: %w", f.Field, err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return fmt.Errorf("write file part %s: %w", f.Field, err)
	}
	return nil
}
