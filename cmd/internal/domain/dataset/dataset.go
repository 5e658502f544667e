// Package dataset holds the fixed registry collection the search runs over
// until a real search backend exists.
package dataset

import (
	"entitysearch/cmd/internal/domain/entity"

	"github.com/google/uuid"
)

// New builds a fresh copy of the collection. IDs are random per call.
func New() []entity.Entity {
	joao := entity.NewIndividual(uuid.NewString(), "João Silva", "123.456.789-01", entity.IndividualInfo{
		Gender:     "Masculino",
		BirthDate:  "15/05/1980",
		MotherName: "Maria Silva",
	})
	joao.Phones = joaoPhones()
	joao.Emails = joaoEmails()
	joao.Addresses = joaoAddresses()

	// Shares the CPF and contacts with João Silva on purpose: document
	// searches must be able to return more than one person.
	joaoCarlos := entity.NewIndividual(uuid.NewString(), "João Carlos", "123.456.789-01", entity.IndividualInfo{
		Gender:     "Masculino",
		BirthDate:  "15/05/1980",
		MotherName: "Maria Silva",
	})
	joaoCarlos.Phones = joaoPhones()
	joaoCarlos.Emails = joaoEmails()
	joaoCarlos.Addresses = joaoAddresses()

	maria := entity.NewIndividual(uuid.NewString(), "Maria Oliveira", "987.654.321-09", entity.IndividualInfo{
		Gender:     "Feminino",
		BirthDate:  "22/11/1992",
		MotherName: "Ana Oliveira",
	})
	maria.Phones = []entity.Phone{{Type: "Celular", Number: "(21) 99999-8888"}}
	maria.Emails = []entity.Email{{Address: "maria.oliveira@hotmail.com"}}
	maria.Addresses = []entity.Address{{
		Street:       "Avenida Brasil",
		Number:       "2000",
		Neighborhood: "Copacabana",
		City:         "Rio de Janeiro",
		State:        "RJ",
		ZipCode:      "22010-000",
	}}

	abc := entity.NewCompany(uuid.NewString(), "Empresa ABC Ltda", "12.345.678/0001-90", entity.CompanyInfo{
		Capital:   1000000,
		StartDate: "01/01/2010",
		Situation: "Ativa",
		CNAE:      "62.02-1-00",
		Shareholders: []entity.Shareholder{
			{Name: "João Silva", Document: "123.456.789-01", Share: 60},
			{Name: "Maria Oliveira", Document: "987.654.321-09", Share: 40},
		},
	})
	abc.Phones = []entity.Phone{{Type: "Comercial", Number: "(11) 2222-3333"}}
	abc.Emails = []entity.Email{{Address: "contato@empresaabc.com.br"}}
	abc.Addresses = []entity.Address{{
		Street:       "Avenida Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01310-100",
	}}

	xyz := entity.NewCompany(uuid.NewString(), "Comércio XYZ S.A.", "98.765.432/0001-21", entity.CompanyInfo{
		Capital:   500000,
		StartDate: "15/03/2015",
		Situation: "Ativa",
		CNAE:      "47.13-0-01",
		Shareholders: []entity.Shareholder{
			{Name: "Carlos Pereira", Document: "456.789.123-45", Share: 100},
		},
	})
	xyz.Phones = []entity.Phone{{Type: "Comercial", Number: "(31) 4444-5555"}}
	xyz.Emails = []entity.Email{{Address: "vendas@comercioxyz.com.br"}}
	xyz.Addresses = []entity.Address{{
		Street:       "Rua da Bahia",
		Number:       "1500",
		Neighborhood: "Centro",
		City:         "Belo Horizonte",
		State:        "MG",
		ZipCode:      "30160-011",
	}}

	return []entity.Entity{joao, joaoCarlos, maria, abc, xyz}
}

func joaoPhones() []entity.Phone {
	return []entity.Phone{
		{Type: "Celular", Number: "(11) 98765-4321"},
		{Type: "Residencial", Number: "(11) 3456-7890"},
	}
}

func joaoEmails() []entity.Email {
	return []entity.Email{
		{Address: "joao.silva@gmail.com"},
		{Address: "joao.silva@empresa.com.br"},
	}
}

func joaoAddresses() []entity.Address {
	return []entity.Address{{
		Street:       "Rua das Flores",
		Number:       "100",
		Complement:   "Apto 101",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01001-000",
	}}
}
