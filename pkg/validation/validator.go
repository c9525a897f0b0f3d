// Package validation binds path, query, form and JSON body input and reports
// every failure as a located detail list.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator"
)

var patterns sync.Map // pattern string -> *regexp.Regexp

// New returns a validator that names fields by their json tag and
// understands the regexp=<pattern> rule
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form", "query"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("regexp", matchPattern)
	return v
}

func matchPattern(fl validator.FieldLevel) bool {
	re, err := compile(fl.Param())
	if err != nil {
		return false
	}
	return re.MatchString(fl.Field().String())
}

// compile caches compiled patterns since rules are evaluated per request
func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

// EchoValidator adapts the validator to echo.Validator
type EchoValidator struct {
	validator *validator.Validate
}

// NewEchoValidator builds the validator installed on the Echo instance
func NewEchoValidator() *EchoValidator {
	return &EchoValidator{validator: New()}
}

// Validate validates struct fields using validator tags
func (ev *EchoValidator) Validate(i interface{}) error {
	return ev.validator.Struct(i)
}
