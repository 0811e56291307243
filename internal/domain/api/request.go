// Package api describes calls to the content backend independent of transport.
package api

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Attachment is a single binary file sent alongside form fields.
type Attachment struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Field is one ordered multipart text field.
type Field struct {
	Name  string
	Value string
}

// Multipart is a request body carrying text fields and at most one attachment.
type Multipart struct {
	Fields []Field
	File   *Attachment
}

// Add appends a text field.
func (m *Multipart) Add(name, value string) {
	m.Fields = append(m.Fields, Field{Name: name, Value: value})
}

// Request is a single backend call. Body is nil, a *Multipart, or any value
// that encodes to JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Response is a successful backend answer.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
