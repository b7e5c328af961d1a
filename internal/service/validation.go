package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/portfolio-api/pkg/docstore"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func validationError(err error, message string) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Validation(message)
	}
	fields := make([]appErrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, appErrors.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return appErrors.Validation(message, fields...)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// storeError maps docstore failures onto API errors.
func storeError(err error, notFound, failure string) *appErrors.Error {
	if errors.Is(err, docstore.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Internal(err, failure)
}

// trimmed returns the trimmed value of p, or nil when p is nil.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

// optional turns blank strings into nil.
func optional(p *string) *string {
	p = trimmed(p)
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func requireNonBlank(field string, p *string) *appErrors.Error {
	if p != nil && *p == "" {
		return appErrors.Validation("invalid payload", appErrors.FieldError{Field: field, Message: "must not be blank"})
	}
	return nil
}
