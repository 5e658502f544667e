package repository

import (
	"errors"

	"entitysearch/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

// FindByCNPJ returns the cached company, or nil when there is no cache row.
func (r *DefaultCompanyRepository) FindByCNPJ(cnpj string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.
		Preload("Partners").
		Where("cnpj = ?", cnpj).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Save upserts the company and replaces its partner list.
func (r *DefaultCompanyRepository) Save(company *entity.Company) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_cnpj = ?", company.CNPJ).Delete(&entity.CompanyPartner{}).Error; err != nil {
			return err
		}

		for _, p := range company.Partners {
			p.ID = 0
			p.CompanyCNPJ = company.CNPJ
		}

		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(company).Error
	})
}

// DeleteExpired drops cache rows (and their partners) cached before the
// given epoch millis.
func (r *DefaultCompanyRepository) DeleteExpired(before int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&entity.Company{}).Select("cnpj").Where("cached_at < ?", before)
		if err := tx.Where("company_cnpj IN (?)", expired).Delete(&entity.CompanyPartner{}).Error; err != nil {
			return err
		}
		return tx.Where("cached_at < ?", before).Delete(&entity.Company{}).Error
	})
}
