package entity

import "errors"

type EntityType string

const (
	EntityIndividual EntityType = "individual"
	EntityCompany    EntityType = "company"
)

var (
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrMixedEntityFields = errors.New("entity carries fields of the other variant")
)

type Phone struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type Email struct {
	Address string `json:"address"`
}

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type Shareholder struct {
	Name     string  `json:"name"`
	Document string  `json:"document"`
	Share    float64 `json:"share"`
}

// IndividualInfo holds the fields only an individual carries.
type IndividualInfo struct {
	Gender     string `json:"gender,omitempty"`
	BirthDate  string `json:"birthDate,omitempty"`
	MotherName string `json:"motherName,omitempty"`
}

// CompanyInfo holds the fields only a company carries.
type CompanyInfo struct {
	Capital      float64       `json:"capital,omitempty"`
	StartDate    string        `json:"startDate,omitempty"`
	Situation    string        `json:"situation,omitempty"`
	CNAE         string        `json:"cnae,omitempty"`
	Shareholders []Shareholder `json:"shareholders,omitempty"`
}

// Entity is a searchable registry record, either an individual or a company.
//
// Type decides which of the embedded variant structs is populated, the other
// one is always nil. Embedding keeps the JSON flat, matching the persisted
// history format.
type Entity struct {
	ID        string     `json:"id"`
	Type      EntityType `json:"type"`
	Name      string     `json:"name"`
	Document  string     `json:"document"`
	Phones    []Phone    `json:"phones"`
	Emails    []Email    `json:"emails"`
	Addresses []Address  `json:"addresses"`

	*IndividualInfo
	*CompanyInfo
}

func NewIndividual(id, name, document string, info IndividualInfo) Entity {
	return Entity{
		ID:             id,
		Type:           EntityIndividual,
		Name:           name,
		Document:       document,
		IndividualInfo: &info,
	}
}

func NewCompany(id, name, document string, info CompanyInfo) Entity {
	return Entity{
		ID:          id,
		Type:        EntityCompany,
		Name:        name,
		Document:    document,
		CompanyInfo: &info,
	}
}

// Validate checks that only the fields of the entity's own variant are set.
func (e *Entity) Validate() error {
	switch e.Type {
	case EntityIndividual:
		if e.CompanyInfo != nil {
			return ErrMixedEntityFields
		}
	case EntityCompany:
		if e.IndividualInfo != nil {
			return ErrMixedEntityFields
		}
	default:
		return ErrUnknownEntityType
	}
	return nil
}

func (e *Entity) IsCompany() bool {
	return e.Type == EntityCompany
}
