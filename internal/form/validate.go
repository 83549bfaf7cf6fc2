package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Patterns the site has always accepted. They are looser than RFC-grade
// checks on purpose: visitors paste "example.com/app" without a scheme.
var (
	addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	webURLPattern  = regexp.MustCompile(`^(https?://)?([\w-]+\.)+[\w-]+(/[\w .?%&=/-]*)?$`)
	handlePattern  = regexp.MustCompile(`^@?\w{1,15}$`)
)

// validate is shared by every form and record check. A *validator.Validate
// caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report record fields by their JSON name, which is also the form
	// field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Custom tags usable both in Field.Rules and in struct tags on
	// the records in package types.
	for tag, re := range map[string]*regexp.Regexp{
		"address": addressPattern,
		"weburl":  webURLPattern,
		"handle":  handlePattern,
	} {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}

	return v
}

// CheckRecord runs the validate tags of a record struct. Forms call it as
// the last gate before a record reaches the store. Rule failures come back
// as a *ValidationError keyed by JSON field name.
func CheckRecord(record any) error {
	err := validate.Struct(record)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			fields[e.Field()] = describe(e)
		}
		return &ValidationError{Fields: fields}
	}

	return err
}

// describe turns one validator.FieldError into a plain sentence.
func describe(e validator.FieldError) string {
	switch e.ActualTag() {
	case "required":
		return fmt.Sprintf("field %s is required", e.Field())
	case "address":
		return fmt.Sprintf("field %s must be a valid email address", e.Field())
	case "weburl":
		return fmt.Sprintf("field %s must be a valid URL", e.Field())
	case "handle", "excludes":
		return fmt.Sprintf("field %s must be a valid Twitter handle", e.Field())
	case "oneof":
		return fmt.Sprintf("field %s must be one of: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("field %s is invalid", e.Field())
	}
}

// Matches reports whether value satisfies a validator tag expression such
// as "address" or "omitempty,weburl".
func Matches(value, rules string) bool {
	return validate.Var(value, rules) == nil
}
