package entity

import "strconv"

type RegStatus string

const (
	StatusActive    RegStatus = "ACTIVE"
	StatusClosed    RegStatus = "CLOSED"
	StatusSuspended RegStatus = "SUSPENDED"
	StatusUnfit     RegStatus = "UNFIT"
	StatusUnknown   RegStatus = "UNKNOWN"
)

// Company is a cached registry row for a CNPJ fetched from the public
// Receita Federal mirror.
type Company struct {
	CNPJ                string `gorm:"primaryKey;column:cnpj"`
	LegalName           string
	TradeName           string
	LegalNature         string
	CompanySize         string
	BusinessStartDate   string
	ShareCapital        float64
	CNAE                string
	RegStatus           RegStatus
	RegReason           string
	RegDate             string
	Phone               string
	Email               string
	AddressType         string
	AddressStreetName   string
	AddressNumber       string
	AddressComplement   string
	AddressNeighborhood string
	AddressZipCode      string
	AddressCity         string
	AddressState        string

	// Found controls negative caching: false means the CNPJ was queried,
	// came back as a 404 and must not be fetched again until it expires.
	Found    bool  `gorm:"not null"`
	CachedAt int64 `gorm:"autoUpdateTime:false"`

	Partners []*CompanyPartner `gorm:"foreignKey:CompanyCNPJ;references:CNPJ;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type CompanyPartner struct {
	ID          int    `gorm:"primaryKey"`
	CompanyCNPJ string `gorm:"uniqueIndex:idx_company_partner_cnpj_name;index"`
	Name        string `gorm:"uniqueIndex:idx_company_partner_cnpj_name"`
	Document    string
	Role        string
	RoleCode    int
	AgeRange    string
}

// ToEntity converts the cached row into the registry entity shape used by
// search results, so a live lookup renders like any other company.
func (c *Company) ToEntity() Entity {
	name := c.TradeName
	if name == "" {
		name = c.LegalName
	}

	shareholders := make([]Shareholder, 0, len(c.Partners))
	for _, p := range c.Partners {
		shareholders = append(shareholders, Shareholder{Name: p.Name, Document: p.Document})
	}

	e := NewCompany(c.CNPJ, name, FormatCNPJ(c.CNPJ), CompanyInfo{
		Capital:      c.ShareCapital,
		StartDate:    c.BusinessStartDate,
		Situation:    string(c.RegStatus),
		CNAE:         c.CNAE,
		Shareholders: shareholders,
	})
	e.Phones = []Phone{}
	e.Emails = []Email{}
	e.Addresses = []Address{}

	if c.Phone != "" {
		e.Phones = append(e.Phones, Phone{Type: "Comercial", Number: c.Phone})
	}
	if c.Email != "" {
		e.Emails = append(e.Emails, Email{Address: c.Email})
	}
	if c.AddressStreetName != "" {
		street := c.AddressStreetName
		if c.AddressType != "" {
			street = c.AddressType + " " + street
		}
		e.Addresses = append(e.Addresses, Address{
			Street:       street,
			Number:       c.AddressNumber,
			Complement:   c.AddressComplement,
			Neighborhood: c.AddressNeighborhood,
			City:         c.AddressCity,
			State:        c.AddressState,
			ZipCode:      c.AddressZipCode,
		})
	}
	return e
}

// FormatCNPJ masks a 14 digit CNPJ as 00.000.000/0000-00. Anything else is
// returned unchanged.
func FormatCNPJ(cnpj string) string {
	if len(cnpj) != 14 {
		return cnpj
	}
	if _, err := strconv.ParseUint(cnpj, 10, 64); err != nil {
		return cnpj
	}
	return cnpj[:2] + "." + cnpj[2:5] + "." + cnpj[5:8] + "/" + cnpj[8:12] + "-" + cnpj[12:]
}
