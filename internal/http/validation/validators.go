// Package validation checks submitted form values before anything reaches the backend.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty and does not exceed maxLen characters.
// A maxLen of zero means unbounded. Uses rune count for proper Unicode support.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		return checkLen(fieldName, v, maxLen)
	}
}

// Optional validates that an optional field does not exceed maxLen characters if provided.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		return checkLen(fieldName, v, maxLen)
	}
}

func checkLen(fieldName, v string, maxLen int) string {
	if maxLen > 0 && utf8.RuneCountInString(v) > maxLen {
		return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
	}
	return ""
}

// HTTPURL validates that a non-empty field is an absolute http(s) URL.
// Empty values pass; combine with Required when the field is mandatory.
func HTTPURL(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		p, e := url.Parse(v)
		if e != nil || (p.Scheme != "http" && p.Scheme != "https") || p.Host == "" {
			return fieldName + " must be a valid http(s) URL."
		}
		return ""
	}
}

// Email validates that a non-empty field is a bare email address.
func Email(fieldName string) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
			return "Enter a valid email address."
		}
		return ""
	}
}

// Pattern validates that a field matches the provided regular expression.
func Pattern(fieldName string, re *regexp.Regexp) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if !re.MatchString(v) {
			return fieldName + " has an invalid format."
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if err := v(value); err != "" {
			fv.errors[field] = err
			break
		}
	}
	return fv
}

// Add records an error for field unless one is already present.
func (fv *FieldValidator) Add(field, message string) *FieldValidator {
	if _, ok := fv.errors[field]; !ok {
		fv.errors[field] = message
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Valid reports whether no errors were recorded.
func (fv *FieldValidator) Valid() bool { return len(fv.errors) == 0 }

// ForField builds the validator chain for one schema field.
func ForField(f content.FieldSpec) []Validator {
	var chain []Validator
	if f.Required {
		chain = append(chain, Required(f.Label, f.MaxLen))
	} else {
		chain = append(chain, Optional(f.Label, f.MaxLen))
	}
	switch f.Kind {
	case content.KindEmail:
		chain = append(chain, Email(f.Label))
	case content.KindURL:
		chain = append(chain, HTTPURL(f.Label))
	}
	return chain
}

// Schema validates values against every text field of s. Checkbox fields
// are never invalid. Attachments are checked where the upload is read.
func Schema(s content.Schema, values map[string]string) *FieldValidator {
	fv := New()
	for _, f := range s.Fields {
		if f.Kind == content.KindBool {
			continue
		}
		fv.Validate(f.Name, values[f.Name], ForField(f)...)
	}
	return fv
}
