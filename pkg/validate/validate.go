// Package validate runs struct-tag validation and turns the failures into a
// flat map of field → human message.
//
// Rules are the go-playground/validator set plus two application rules:
//
//	objectid   24-character hexadecimal document id
//	password   6-20 characters with at least one lower-case letter,
//	           one upper-case letter and one digit
//
// Field names in the error map follow the `json` tag, with nested paths
// joined by dots ("product_variants[1].options[0]").
//
//	type Input struct {
//	    Name   string `json:"name"   validate:"required,max=100"`
//	    Parent string `json:"parent" validate:"omitempty,objectid"`
//	}
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("objectid", isObjectID)
		_ = v.RegisterValidation("password", isPassword)
	})
	return v
}

// Struct validates s and returns a map of field name → message.
// An empty map means s is valid.
func Struct(s any) map[string]string {
	errs := make(map[string]string)
	err := engine().Struct(s)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: s was not a struct.
		return errs
	}
	for _, fe := range verrs {
		name := fieldPath(fe)
		if _, seen := errs[name]; seen {
			continue
		}
		errs[name] = message(name, fe)
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// ObjectID reports whether s is a valid 24-hex document id.
func ObjectID(s string) bool { return primitive.IsValidObjectID(s) }

// ─── Custom rules ─────────────────────────────────────────────────────────────

func isObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

func isPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if n := len([]rune(s)); n < 6 || n > 20 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// ─── Messages ─────────────────────────────────────────────────────────────────

func message(field string, fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url", "uri":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "objectid":
		return fmt.Sprintf("The %s must be a valid id.", field)
	case "password":
		return fmt.Sprintf("The %s must be 6-20 characters and contain a lower-case letter, an upper-case letter and a digit.", field)
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, strings.ReplaceAll(param, " ", ", "))
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("The %s must have at least %s items.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("The %s must not be greater than %s.", field, param)
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("The %s must not have more than %s items.", field, param)
		}
		return fmt.Sprintf("The %s must not be greater than %s characters.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
	case "unique":
		return fmt.Sprintf("The %s must not contain duplicates.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
