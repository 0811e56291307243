package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/target/schoolsite-ui/internal/http/richtext"
	corefuncs "github.com/target/schoolsite-ui/internal/http/templates/core"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS    fs.FS              // Filesystem containing templates (required)
	RichText      *richtext.Renderer // Rich content policy (optional; sanitizes when nil)
	ExcerptLength int                // News excerpt length in runes (optional)
	Logger        *slog.Logger       // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	renderer := &TemplateRenderer{logger: cfg.Logger}

	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{
		Template:           &t,
		ContentTemplateFor: ContentTemplateFor,
		RichText:           cfg.RichText,
		ExcerptLength:      cfg.ExcerptLength,
	})
	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "layout", data, http.StatusOK)
}

// RenderFullStatus renders the full page with a non-200 status such as 404.
func (r *TemplateRenderer) RenderFullStatus(w http.ResponseWriter, data any, status int) error {
	return r.renderTemplate(w, "layout", data, status)
}

// RenderPartial renders only the main content area.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "content", data, http.StatusOK)
}

// RenderError renders an error page using the error template.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "error-layout", data, http.StatusInternalServerError)
}

// ExecuteContent writes the main content area (flash notice plus the page's
// section) for htmx swaps. Headers are the caller's responsibility.
func (r *TemplateRenderer) ExecuteContent(w io.Writer, data any) error {
	if err := r.t.ExecuteTemplate(w, "content", data); err != nil {
		r.logTemplateError("content", err)
		return err
	}
	return nil
}

func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, templateName string, data any, status int) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logTemplateError(templateName, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		if r.logger != nil {
			r.logger.Error("failed to write rendered template",
				slog.String("template", templateName),
				slog.Any("error", err),
			)
		}
		return err
	}
	return nil
}

func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}
