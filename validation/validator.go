// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/natemartinsf/auto-bean/errs"
	"github.com/natemartinsf/auto-bean/models"
)

// Validator wraps go-playground/validator and returns errs.Invalid.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error details
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Domain rules; pointer fields arrive dereferenced
	v.RegisterValidation("points", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.CanInt() && f.Int() >= 0
	})
	v.RegisterValidation("max_points", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.CanInt() && f.Int() >= 1
	})
	v.RegisterValidation("voters", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.CanInt() && f.Int() >= 1 && f.Int() <= models.MaxVoterBatch
	})

	return &Validator{v: v}
}

// Validate checks a struct and returns an *errs.Error with per-field details.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errs.Wrap(err, errs.CodeInvalid, "validation failed")
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return errs.InvalidWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return "must be a date formatted " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "points":
		return "must be zero or more points"
	case "max_points":
		return "must allow at least one point per voter"
	case "voters":
		return fmt.Sprintf("must be between 1 and %d voters", models.MaxVoterBatch)
	default:
		return "is invalid"
	}
}
