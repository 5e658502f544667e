package minhareceita

import (
	"strconv"
	"strings"

	"entitysearch/cmd/internal/domain/entity"
)

type companyResponse struct {
	CNPJ                     string  `json:"cnpj"`
	LegalName                string  `json:"razao_social"`
	TradeName                string  `json:"nome_fantasia"`
	LegalNature              string  `json:"natureza_juridica"`
	CompanySize              string  `json:"porte"`
	BusinessStartDate        string  `json:"data_inicio_atividade"`
	RegistrationStatus       string  `json:"descricao_situacao_cadastral"`
	RegistrationStatusReason string  `json:"descricao_motivo_situacao_cadastral"`
	RegistrationStatusDate   string  `json:"data_situacao_cadastral"`
	ShareCapital             float64 `json:"capital_social"`
	CNAE                     int     `json:"cnae_fiscal"`
	Phone                    string  `json:"ddd_telefone_1"`
	Email                    string  `json:"email"`

	AddressType         string `json:"descricao_tipo_de_logradouro"`
	AddressStreetName   string `json:"logradouro"`
	AddressNumber       string `json:"numero"`
	AddressComplement   string `json:"complemento"`
	AddressNeighborhood string `json:"bairro"`
	AddressZipCode      string `json:"cep"`
	AddressCity         string `json:"municipio"`
	AddressState        string `json:"uf"`

	Partners []*partnerResponse `json:"qsa"`
}

type partnerResponse struct {
	Name     string `json:"nome_socio"`
	Document string `json:"cnpj_cpf_do_socio"`
	Role     string `json:"qualificacao_socio"`
	RoleCode int    `json:"codigo_qualificacao_socio"`
	AgeRange string `json:"faixa_etaria"`
}

func (c *companyResponse) ToDomain() *entity.Company {
	var partners []*entity.CompanyPartner
	for _, p := range c.Partners {
		partners = append(partners, &entity.CompanyPartner{
			CompanyCNPJ: c.CNPJ,
			Name:        p.Name,
			Document:    p.Document,
			Role:        p.Role,
			RoleCode:    p.RoleCode,
			AgeRange:    p.AgeRange,
		})
	}

	return &entity.Company{
		CNPJ:                c.CNPJ,
		LegalName:           c.LegalName,
		TradeName:           c.TradeName,
		LegalNature:         c.LegalNature,
		CompanySize:         c.CompanySize,
		BusinessStartDate:   c.BusinessStartDate,
		ShareCapital:        c.ShareCapital,
		CNAE:                formatCNAE(c.CNAE),
		RegStatus:           translateStatus(c.RegistrationStatus),
		RegReason:           c.RegistrationStatusReason,
		RegDate:             c.RegistrationStatusDate,
		Phone:               strings.TrimSpace(c.Phone),
		Email:               strings.ToLower(strings.TrimSpace(c.Email)),
		AddressType:         c.AddressType,
		AddressStreetName:   c.AddressStreetName,
		AddressNumber:       c.AddressNumber,
		AddressComplement:   c.AddressComplement,
		AddressNeighborhood: c.AddressNeighborhood,
		AddressZipCode:      c.AddressZipCode,
		AddressCity:         c.AddressCity,
		AddressState:        c.AddressState,
		Partners:            partners,
	}
}

func translateStatus(status string) entity.RegStatus {
	switch strings.ToUpper(status) {
	case "ATIVA":
		return entity.StatusActive
	case "BAIXADA":
		return entity.StatusClosed
	case "SUSPENSA":
		return entity.StatusSuspended
	case "INAPTA":
		return entity.StatusUnfit
	default:
		return entity.StatusUnknown
	}
}

// formatCNAE renders the numeric activity code as 00.00-0-00.
func formatCNAE(code int) string {
	if code <= 0 {
		return ""
	}
	s := strconv.Itoa(code)
	if len(s) < 7 {
		s = strings.Repeat("0", 7-len(s)) + s
	}
	if len(s) != 7 {
		return s
	}
	return s[:2] + "." + s[2:4] + "-" + s[4:5] + "-" + s[5:]
}
