// Package validation turns gin binding errors into per-field messages for the
// operator.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
)

type FieldErrors map[string]string

// FromBindError maps a binding error onto form field names. dst is the bound
// struct pointer; its form tags name the fields.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructField())
			if _, dup := out[key]; !dup {
				out[key] = messageForTag(fe.Tag(), fe.Param())
			}
		}
		return out
	}

	// Type mismatches and malformed bodies.
	out["_"] = "The form could not be read. Please try again."
	return out
}

// Map returns plain map form, which apperr.InvalidErr takes.
func (f FieldErrors) Map() map[string]string { return map[string]string(f) }

// Invalid wraps a binding error as an Invalid apperr carrying the field
// messages, ready for a flash redirect back to the form.
func Invalid(err error, dst any) error {
	return apperr.InvalidErr("Please correct the highlighted fields.", FromBindError(err, dst).Map())
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "This field is required."
	case "amount":
		return "Enter an amount greater than zero."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + param + " characters."
	case "max":
		return "Must be at most " + param + " characters."
	case "len":
		return "Must be exactly " + param + " characters."
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "numeric", "number":
		return "Enter a number."
	case "gt", "gte":
		return "Must be greater than " + param + "."
	default:
		return "Invalid value."
	}
}
