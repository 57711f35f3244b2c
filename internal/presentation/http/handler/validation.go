package handler

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
)

var (
	hsnPattern   = regexp.MustCompile(`^(\d{4}|\d{6}|\d{8})$`)
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags (hsn, gstin, slug)
// and reports field errors by their JSON names. Safe to call repeatedly.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(fieldName)
		for tag, fn := range map[string]validator.Func{
			"hsn":   matches(hsnPattern, true, nil),
			"gstin": matches(gstinPattern, false, strings.ToUpper),
			"slug":  matches(slugPattern, false, nil),
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}

// matches validates a string against re after an optional normalize step.
// allowEmpty lets the tag run on optional fields without omitempty.
func matches(re *regexp.Regexp, allowEmpty bool, normalize func(string) string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return allowEmpty
		}
		if normalize != nil {
			s = normalize(s)
		}
		return re.MatchString(s)
	}
}

// fieldName names a struct field by its json tag, then its form tag.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// fieldErrors turns validator failures into API field errors. Paths drop
// the top level struct name, e.g. "payments[1].mode".
func fieldErrors(errs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, apperror.FieldError{Field: field, Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "Must have at least " + fe.Param() + " characters or items"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "Must have at most " + fe.Param() + " characters or items"
		}
		return "Must be at most " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "email":
		return "Must be a valid email address"
	case "uuid":
		return "Must be a valid ID"
	case "datetime":
		return "Must match the format " + fe.Param()
	case "timezone":
		return "Must be an IANA timezone such as Asia/Kolkata"
	case "hsn":
		return "HSN/SAC code must be 4, 6 or 8 digits"
	case "gstin":
		return "Must be a valid 15 character GSTIN"
	case "slug":
		return "Must contain only lowercase letters, digits and dashes"
	}
	return "Is invalid"
}
