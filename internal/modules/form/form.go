// Package form validates dashboard form inputs and parses the values those
// forms carry. Inputs declare their rules with the same `binding` tags gin
// applies when it binds a request, so a service rejects exactly what the
// handler would.
package form

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/validation"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterRules(v)
	return v
}

// RegisterRules adds the dashboard's own tags to v: "amount" for a positive
// money amount as typed by the operator and "notblank" for text that is more
// than whitespace.
func RegisterRules(v *validator.Validate) {
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, ok := ParseAmount(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// Fields collects per-field validation messages keyed by form field name.
type Fields map[string]string

// Validate checks in, a struct or pointer to one, against its binding tags.
func Validate(in any) Fields {
	f := Fields{}
	if err := engine.Struct(in); err != nil {
		for k, msg := range validation.FromBindError(err, in) {
			f.Add(k, msg)
		}
	}
	return f
}

func (f Fields) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Err returns an Invalid error when any field failed, nil otherwise.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return apperr.InvalidErr("Please correct the highlighted fields.", map[string]string(f))
}

// File records the file's validation failure, if any.
func (f Fields) File(field string, file *upload.File, rules upload.Rules) {
	if file == nil {
		f.Add(field, "Please attach a proof file.")
		return
	}
	if err := rules.Check(*file); err != nil {
		var ve *upload.ValidationError
		if errors.As(err, &ve) {
			f.Add(field, ve.Error())
			return
		}
		f.Add(field, err.Error())
	}
}

// ParseAmount reads a positive amount in major units. Thousands separators
// and a leading currency symbol are tolerated.
func ParseAmount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}
