package validators

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var nonDigits = regexp.MustCompile(`\D`)

// OnlyDigits strips every non digit character, turning masked documents
// and phone numbers like "(11) 98765-4321" into "11987654321".
func OnlyDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Register installs the custom tags on the given validator instance.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("digitslen", DigitsLen)
	_ = validate.RegisterValidation("notblank", NotBlank)
	_ = validate.RegisterValidation("nodupes", NoDupes)
}

// DigitsLen accepts a string whose digit count, ignoring any mask characters,
// equals one of the space separated lengths in the tag param.
//
// Example: `digitslen=11 14`
func DigitsLen(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	count := len(OnlyDigits(val))
	for _, raw := range strings.Fields(fl.Param()) {
		want, err := strconv.Atoi(raw)
		if err != nil {
			log.Warnf("validator 'digitslen' has invalid param: %s", fl.Param())
			return false
		}
		if count == want {
			return true
		}
	}
	return false
}

// NotBlank rejects strings that are empty or only whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}
