// Package validate holds the field checks shared by registration and the
// record forms. A value made only of whitespace counts as blank everywhere.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Rule tags understood by Var and by `validate` struct tags.
const (
	NotBlank = "notblank"
	// EmailShape is the historical check: an '@' and a '.' somewhere.
	EmailShape  = "contains=@,contains=."
	NonNegative = "min=0"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	if err := val.RegisterValidation(NotBlank, validators.NotBlank); err != nil {
		panic(err)
	}
	return val
}

// Struct checks the `validate` tags of s.
func Struct(s interface{}) error {
	return v.Struct(s)
}

// Var checks a single value against tag.
func Var(value interface{}, tag string) error {
	return v.Var(value, tag)
}

// OneOf builds the tag accepting exactly options. Options may contain spaces.
func OneOf(options []string) string {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "'" + o + "'"
	}
	return "oneof=" + strings.Join(quoted, " ")
}

func Email(s string) bool {
	return Var(s, EmailShape) == nil
}

func Blank(s string) bool {
	return Var(s, NotBlank) != nil
}

// FailedTags returns the set of rule tags that failed in err, or nil when err
// does not come from the validator.
func FailedTags(err error) map[string]bool {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make(map[string]bool, len(errs))
	for _, fe := range errs {
		out[fe.Tag()] = true
	}
	return out
}
