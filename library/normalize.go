package library

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Normalizer turns raw input into complete records: it trims text fields,
// applies the default tags, then validates.
type Normalizer struct {
	conform  *mold.Transformer
	validate *validator.Validate
}

// NewNormalizer builds a Normalizer that reports fields by their JSON names.
func NewNormalizer() *Normalizer {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Normalizer{conform: modifiers.New(), validate: validate}
}

// Input cleans in place and returns a ValidationError for the first bad field.
func (n *Normalizer) Input(in *BookInput) error {
	if err := n.conform.Struct(context.Background(), in); err != nil {
		return errors.WithStack(err)
	}
	if err := defaults.Set(in); err != nil {
		return errors.WithStack(err)
	}
	if err := n.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return ValidationError(formatFieldError(verrs[0].Field(), verrs[0].Tag(), verrs[0].Param()))
		}
		return errors.WithStack(err)
	}
	return nil
}

// Patch trims the present text fields and validates them against the same
// rules as Input. Absent fields are not checked.
func (n *Normalizer) Patch(p *BookPatch) error {
	// Trimmed values get fresh pointers so the caller's strings are untouched.
	for _, field := range []**string{&p.Title, &p.Author, &p.Category, &p.CoverURL, &p.Status} {
		if *field != nil {
			v := strings.TrimSpace(**field)
			*field = &v
		}
	}

	checks := []struct {
		field string
		value interface{}
		tag   string
	}{
		{"title", p.Title, "required"},
		{"author", p.Author, "required"},
		{"rating", p.Rating, "min=0,max=5"},
	}
	for _, c := range checks {
		v := reflect.ValueOf(c.value)
		if v.IsNil() {
			continue
		}
		if err := n.validate.Var(v.Elem().Interface(), c.tag); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return ValidationError(formatFieldError(c.field, verrs[0].Tag(), verrs[0].Param()))
			}
			return errors.WithStack(err)
		}
	}
	return nil
}

func formatFieldError(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, param)
	case "max":
		return fmt.Sprintf("%q must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%q failed on the %q validation", field, tag)
	}
}

// newBook builds the stored record from normalized input.
func newBook(id, dateAdded string, in BookInput) Book {
	return Book{
		ID:        id,
		Title:     in.Title,
		Author:    in.Author,
		Category:  in.Category,
		CoverURL:  in.CoverURL,
		Rating:    in.Rating,
		Status:    in.Status,
		DateAdded: dateAdded,
	}
}

// apply merges the present patch fields over b.
func (p BookPatch) apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.CoverURL != nil {
		b.CoverURL = *p.CoverURL
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
}
