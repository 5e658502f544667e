package validators

import (
	"fmt"
	"strings"

	"entitysearch/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength = 3
	NameMaxLength = 100
)

const (
	MsgDocumentRequired = "document is required"
	MsgDocumentLength   = "document must have 11 digits (individual) or 14 digits (company)"
	MsgEmailRequired    = "email is required"
	MsgEmailInvalid     = "invalid email"
	MsgPhoneRequired    = "phone is required"
	MsgPhoneLength      = "phone must have 10 or 11 digits"
	MsgAddressRequired  = "address is required"
	MsgNameTooShort     = "name must have at least 3 characters"
	MsgNameTooLong      = "name too long"
)

// ValidationError is a rejected search value. It is meant to be shown next
// to the input, so Message is already user facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// rule pairs a validator tag with the message shown when it fails.
type rule struct {
	tag string
	msg string
}

var (
	documentRules = []rule{
		{tag: "required", msg: MsgDocumentRequired},
		{tag: "digitslen=11 14", msg: MsgDocumentLength},
	}
	emailRules = []rule{
		{tag: "required", msg: MsgEmailRequired},
		{tag: "email", msg: MsgEmailInvalid},
	}
	phoneRules = []rule{
		{tag: "required", msg: MsgPhoneRequired},
		{tag: "digitslen=10 11", msg: MsgPhoneLength},
	}
	addressRules = []rule{
		{tag: "notblank", msg: MsgAddressRequired},
	}
	nameRules = []rule{
		{tag: fmt.Sprintf("min=%d", NameMinLength), msg: MsgNameTooShort},
		{tag: fmt.Sprintf("max=%d", NameMaxLength), msg: MsgNameTooLong},
	}
)

// SearchValidator checks a raw query against the rule of its search type.
// The validator instance must have the custom tags from utils/validators
// registered.
type SearchValidator struct {
	validate *validator.Validate
}

func NewSearchValidator(validate *validator.Validate) *SearchValidator {
	return &SearchValidator{validate: validate}
}

// Validate returns nil when value is acceptable for t, or the first failing
// rule otherwise. Passing a type without a rule (including the details-view
// sentinel) is a programming error and panics.
func (s *SearchValidator) Validate(t entity.SearchType, value string) *ValidationError {
	switch t {
	case entity.SearchDocument:
		return s.check(value, documentRules)
	case entity.SearchEmail:
		return s.check(value, emailRules)
	case entity.SearchPhone:
		return s.check(value, phoneRules)
	case entity.SearchAddress:
		return s.check(value, addressRules)
	case entity.SearchName:
		return s.check(strings.TrimSpace(value), nameRules)
	default:
		panic(fmt.Sprintf("validators: no rule for search type %q", t))
	}
}

func (s *SearchValidator) check(value string, rules []rule) *ValidationError {
	for _, r := range rules {
		if err := s.validate.Var(value, r.tag); err != nil {
			return &ValidationError{Field: "value", Message: r.msg}
		}
	}
	return nil
}
