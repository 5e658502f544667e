package entity

import (
	"errors"
	"strings"
)

// SearchType selects which entity field a query is matched against and which
// validation rule applies to it. Values are the wire tags used by clients.
type SearchType string

const (
	SearchDocument SearchType = "cpf/cnpj"
	SearchEmail    SearchType = "email"
	SearchPhone    SearchType = "telefone"
	SearchAddress  SearchType = "endereço"
	SearchName     SearchType = "nome"

	// SearchDetailsView is not a real search mode. It tags history entries
	// recorded when somebody opens an entity's details.
	SearchDetailsView SearchType = "detalhes"
)

var ErrUnknownSearchType = errors.New("unknown search type")

// SearchTypes lists every search mode a client may choose, in display order.
var SearchTypes = []SearchType{
	SearchDocument,
	SearchEmail,
	SearchPhone,
	SearchAddress,
	SearchName,
}

// ParseSearchType resolves a client supplied tag. The details-view sentinel
// is rejected since nothing can be searched with it.
func ParseSearchType(raw string) (SearchType, error) {
	st := SearchType(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range SearchTypes {
		if t == st {
			return t, nil
		}
	}
	return "", ErrUnknownSearchType
}

func (s SearchType) String() string {
	return string(s)
}
