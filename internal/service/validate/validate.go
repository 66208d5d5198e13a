package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const RoleKeyTag = "rolekey"

var roleKeyPattern = regexp.MustCompile(`^[a-z0-9:_-]+$`)

var std = New()

// New returns validator that reports json field names and knows custom tags
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(useJSONTagNames)
	_ = v.RegisterValidation(RoleKeyTag, func(fl validator.FieldLevel) bool {
		return RoleKey(fl.Field().String()) == nil
	})
	return v
}

// Struct validates struct using the shared validator
// Returns validator.ValidationErrors on failed validation
func Struct(s any) error {
	return std.Struct(s)
}

// RoleKey checks key consists of lowercase letters, digits, ':', '_' or '-'
func RoleKey(key string) error {
	if !roleKeyPattern.MatchString(key) {
		return errors.New("role key may contain only lowercase letters, digits, ':', '_' and '-'")
	}
	return nil
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}
