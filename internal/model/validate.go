package model

import (
	"strings"
	"time"

	"github.com/deppfellow/tourism/internal/validation"
	"github.com/shopspring/decimal"
)

type structValidator struct{}

func (structValidator) Struct(s any) error { return validation.Struct(s) }

var validate structValidator

// fieldErrors accumulates rules that cannot be expressed as struct tags.
type fieldErrors validation.CustomValidationErrors

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, validation.CustomValidationError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return validation.CustomValidationErrors(f)
}

// date parses an optional YYYY-MM-DD field and records a failure.
func (f *fieldErrors) date(field, value string) *time.Time {
	t, err := validation.ParseDate(value)
	if err != nil {
		f.add(field, "must be a date in the format YYYY-MM-DD")
		return nil
	}
	return t
}

func (f *fieldErrors) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		f.add(field, "must not be negative")
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
