package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is a request observed by Backend.
type RecordedRequest struct {
	Method        string
	Path          string
	ContentType   string
	Authorization string
	Body          []byte
}

// IsMultipart reports whether the request body was multipart encoded.
func (r RecordedRequest) IsMultipart() bool {
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	return err == nil && mediaType == "multipart/form-data"
}

// JSON decodes the recorded body into a generic map.
func (r RecordedRequest) JSON(t testing.TB) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(r.Body, &out); err != nil {
		t.Fatalf("decode recorded body %q: %v", r.Body, err)
	}
	return out
}

// MultipartPart is one decoded multipart field or file.
type MultipartPart struct {
	Value       string
	FileName    string
	ContentType string
	Data        []byte
}

// Multipart decodes the recorded multipart body keyed by form name.
func (r RecordedRequest) Multipart(t testing.TB) map[string]MultipartPart {
	t.Helper()
	_, params, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		t.Fatalf("parse content type %q: %v", r.ContentType, err)
	}

	out := map[string]MultipartPart{}
	reader := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("read multipart part: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("read multipart data: %v", err)
		}
		p := MultipartPart{FileName: part.FileName(), ContentType: part.Header.Get("Content-Type")}
		if p.FileName != "" {
			p.Data = data
		} else {
			p.Value = string(data)
		}
		out[part.FormName()] = p
	}
}

// Backend is an httptest server standing in for the content API.
// Routes are keyed "METHOD /path" relative to the API root; unknown routes answer 404.
type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewBackend starts a fake content API that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{routes: map[string]http.HandlerFunc{}}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the API root, e.g. http://127.0.0.1:1234/api.
func (b *Backend) URL() string { return b.server.URL + "/api" }

// Handle registers a handler for "METHOD /path".
func (b *Backend) Handle(route string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = h
}

// JSON registers a route answering status with body encoded as JSON.
func (b *Backend) JSON(route string, status int, body any) {
	b.Handle(route, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns how many requests matched "METHOD /path".
func (b *Backend) Count(route string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method+" "+r.Path == route {
			n++
		}
	}
	return n
}

// Last returns the most recent request for "METHOD /path".
func (b *Backend) Last(route string) (RecordedRequest, bool) {
	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method+" "+reqs[i].Path == route {
			return reqs[i], true
		}
	}
	return RecordedRequest{}, false
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	path := strings.TrimPrefix(r.URL.Path, "/api")
	rec := RecordedRequest{
		Method:        r.Method,
		Path:          path,
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	h, ok := b.routes[r.Method+" "+path]
	b.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not found"}`))
		return
	}
	h(w, r)
}
