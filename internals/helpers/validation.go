package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"skb_backend/internals/constants"
)

var (
	skbIDRe      = regexp.MustCompile(`^[A-Z0-9]+$`)
	personNameRe = regexp.MustCompile(`^[\p{L} ]+$`)
	mobileRe     = regexp.MustCompile(`^[0-9]{11,15}$`)

	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the custom tags registered:
// skbid, person_name, mobile and enum=<set>.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("skbid", func(fl validator.FieldLevel) bool {
			return skbIDRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
			return personNameRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return mobileRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			set, ok := constants.Enums[fl.Param()]
			if !ok {
				return false
			}
			return constants.InEnum(set, fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct returns field errors keyed by json name, nil when valid.
func ValidateStruct(s any) map[string][]string {
	return FieldErrors(Validator().Struct(s))
}

func FieldErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := fieldPath(fe)
		out[key] = append(out[key], messageFor(fe))
	}
	return out
}

// AddFieldError appends msg under field, allocating the map when needed.
func AddFieldError(m map[string][]string, field, msg string) map[string][]string {
	if m == nil {
		m = map[string][]string{}
	}
	m[field] = append(m[field], msg)
	return m
}

// MergeFieldErrors returns nil when both inputs are empty.
func MergeFieldErrors(a, b map[string][]string) map[string][]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := map[string][]string{}
	for k, v := range a {
		out[k] = append(out[k], v...)
	}
	for k, v := range b {
		out[k] = append(out[k], v...)
	}
	return out
}

// fieldPath drops the top-level struct name: "CreateRequest.slides[0].alt_text" → "slides[0].alt_text".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "enum":
		return fmt.Sprintf("must be one of: %s", strings.Join(constants.Enums[fe.Param()], ", "))
	case "skbid":
		return "must contain only uppercase letters and numbers"
	case "person_name":
		return "must contain only letters and spaces"
	case "mobile":
		return "must be 11-15 digits"
	case "unique":
		return "must not contain duplicates"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
