package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/locale"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// present rejects blank strings, not only empty ones
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		return locale.IsValid(fl.Field().String())
	})

	v.RegisterStructValidation(validatePublishedDescription, BlogPost{})
	return v
}

// validatePublishedDescription requires a description once the post carries a publication date.
func validatePublishedDescription(sl validator.StructLevel) {
	post := sl.Current().Interface().(BlogPost)
	if post.PublishedAt != nil && strings.TrimSpace(post.Description) == "" {
		sl.ReportError(post.Description, "description", "Description", "present", "")
	}
}

// Validate checks the field rules of the post and its nested images and tags.
// Title uniqueness needs the store and is checked by the repository.
func (p *BlogPost) Validate() error {
	return toValidationError("blog post", validate.Struct(p))
}

func toValidationError(entity string, err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]errs.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, errs.FieldError{
			Field:  fieldPath(fe),
			Reason: reasonFor(fe),
		})
	}
	return errs.NewValidationError(entity, fields)
}

// fieldPath drops the root struct name: "BlogPost.images[0].url" -> "images[0].url"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "present", "required":
		return ReasonBlank
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", fe.Param())
	case "locale":
		return "is not a valid locale"
	default:
		return "is invalid"
	}
}

const (
	ReasonBlank = "can't be blank"
	ReasonTaken = "has already been taken"

	ReasonUnsupportedLocale = "is not a supported locale"
)
