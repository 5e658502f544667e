// Package search matches registry entities against a typed query.
package search

import (
	"strings"

	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/utils/validators"
)

// PredictiveMinLength is the query length predictive suggestions need to
// exceed before the filter runs at all.
const PredictiveMinLength = 2

// Filter returns the entities matching value under search type t, keeping
// the collection order. Textual matches are case-insensitive substring
// matches; numeric ones compare digits only. An unknown type matches nothing.
func Filter(entities []entity.Entity, t entity.SearchType, value string) []entity.Entity {
	match := matcher(t, value)
	result := make([]entity.Entity, 0)
	if match == nil {
		return result
	}

	for i := range entities {
		if match(&entities[i]) {
			result = append(result, entities[i])
		}
	}
	return result
}

// Predictive is Filter for as-you-type suggestions: queries not longer than
// PredictiveMinLength yield nothing.
func Predictive(entities []entity.Entity, t entity.SearchType, value string) []entity.Entity {
	if len([]rune(value)) <= PredictiveMinLength {
		return make([]entity.Entity, 0)
	}
	return Filter(entities, t, value)
}

func matcher(t entity.SearchType, value string) func(*entity.Entity) bool {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch t {
	case entity.SearchDocument:
		digits := validators.OnlyDigits(value)
		return func(e *entity.Entity) bool {
			return strings.Contains(validators.OnlyDigits(e.Document), digits)
		}

	case entity.SearchEmail:
		return func(e *entity.Entity) bool {
			for _, email := range e.Emails {
				if strings.Contains(strings.ToLower(email.Address), lower) {
					return true
				}
			}
			return false
		}

	case entity.SearchPhone:
		digits := validators.OnlyDigits(value)
		return func(e *entity.Entity) bool {
			for _, phone := range e.Phones {
				if strings.Contains(validators.OnlyDigits(phone.Number), digits) {
					return true
				}
			}
			return false
		}

	case entity.SearchAddress:
		return func(e *entity.Entity) bool {
			for _, addr := range e.Addresses {
				if strings.Contains(strings.ToLower(addr.Street), lower) ||
					strings.Contains(strings.ToLower(addr.Neighborhood), lower) ||
					strings.Contains(strings.ToLower(addr.City), lower) {
					return true
				}
			}
			return false
		}

	case entity.SearchName:
		return func(e *entity.Entity) bool {
			return strings.Contains(strings.ToLower(e.Name), lower)
		}

	default:
		return nil
	}
}
