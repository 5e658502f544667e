package service

import (
	"context"
	"errors"

	"entitysearch/cmd/internal/contract"
	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/infrastructure/minhareceita"
	"entitysearch/cmd/internal/metrics"
	"entitysearch/cmd/internal/utils"
	"entitysearch/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type CompanyRepository interface {
	Save(company *entity.Company) error
	FindByCNPJ(cnpj string) (*entity.Company, error)
}

type CompanyFetcher interface {
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Company, error)
}

const (
	sourceCache = "cache"
	sourceAPI   = "api"
	sourceMiss  = "miss"
)

type DefaultUtilService struct {
	ReceitaClient CompanyFetcher
	CompanyRepo   CompanyRepository
	Metrics       *metrics.Metrics
}

func NewUtilService(client CompanyFetcher, companyRepo CompanyRepository, m *metrics.Metrics) *DefaultUtilService {
	return &DefaultUtilService{
		ReceitaClient: client,
		CompanyRepo:   companyRepo,
		Metrics:       m,
	}
}

// GetCompanyByCNPJ resolves an unmasked, already validated CNPJ.
func (u *DefaultUtilService) GetCompanyByCNPJ(ctx context.Context, cnpj string) (*contract.CompanyResponse, apierror.ErrorResponse) {
	company, fromCache, err := u.findCompany(ctx, cnpj)
	if err != nil {
		return nil, err
	}
	return toCompanyResp(company, fromCache), nil
}

// findCompany returns the company, whether it came from the cache and a
// possible error response. Unknown CNPJs are cached too.
func (u *DefaultUtilService) findCompany(ctx context.Context, cnpj string) (*entity.Company, bool, apierror.ErrorResponse) {
	cached, err := u.CompanyRepo.FindByCNPJ(cnpj)
	if err != nil {
		log.Errorf("failed to find company by cnpj %s: %v", cnpj, err)
		return nil, false, apierror.InternalServerError
	}

	if cached != nil {
		u.Metrics.CompanyLookups.WithLabelValues(sourceCache).Inc()
		if !cached.Found {
			return nil, false, apierror.NotFoundError
		}
		return cached, true, nil
	}

	apiCompany, apierr := u.fetchFromAPI(ctx, cnpj)
	if apierr != nil {
		return nil, false, apierr
	}

	if err = u.CompanyRepo.Save(apiCompany); err != nil {
		// The lookup itself succeeded, only the cache write failed.
		log.Errorf("failed to save company cache for CNPJ %s: %v", cnpj, err)
	}
	return apiCompany, false, nil
}

func (u *DefaultUtilService) fetchFromAPI(ctx context.Context, cnpj string) (*entity.Company, apierror.ErrorResponse) {
	company, err := u.ReceitaClient.GetByCNPJ(ctx, cnpj)
	if err != nil {
		if errors.Is(err, minhareceita.ErrNotFound) {
			u.Metrics.CompanyLookups.WithLabelValues(sourceMiss).Inc()
			u.cacheNegativeResult(cnpj)
			return nil, apierror.NotFoundError
		}
		log.Errorf("failed to fetch company by cnpj %s: %v", cnpj, err)
		return nil, apierror.LookupUnavailableError
	}

	u.Metrics.CompanyLookups.WithLabelValues(sourceAPI).Inc()
	company.Found = true
	company.CachedAt = utils.NowUTC()
	return company, nil
}

func (u *DefaultUtilService) cacheNegativeResult(cnpj string) {
	emptyCompany := &entity.Company{
		CNPJ:     cnpj,
		Found:    false,
		CachedAt: utils.NowUTC(),
	}
	if err := u.CompanyRepo.Save(emptyCompany); err != nil {
		log.Warnf("failed to cache missing CNPJ %s: %v", cnpj, err)
	}
}

func toCompanyResp(c *entity.Company, cached bool) *contract.CompanyResponse {
	return &contract.CompanyResponse{
		CNPJ:              c.CNPJ,
		LegalName:         c.LegalName,
		TradeName:         c.TradeName,
		LegalNature:       c.LegalNature,
		CompanySize:       c.CompanySize,
		BusinessStartDate: c.BusinessStartDate,
		ShareCapital:      c.ShareCapital,
		CNAE:              c.CNAE,
		Registration: &contract.CompanyRegistration{
			Status: string(c.RegStatus),
			Reason: c.RegReason,
			Date:   c.RegDate,
		},
		Address: &contract.CompanyAddress{
			Type:         c.AddressType,
			StreetName:   c.AddressStreetName,
			Number:       c.AddressNumber,
			Complement:   c.AddressComplement,
			Neighborhood: c.AddressNeighborhood,
			ZipCode:      c.AddressZipCode,
			City:         c.AddressCity,
			State:        c.AddressState,
		},
		Partners: toPartnersResponse(c.Partners),
		Cached:   cached,
		Entity:   c.ToEntity(),
	}
}

func toPartnersResponse(ps []*entity.CompanyPartner) []*contract.PartnerResponse {
	partners := make([]*contract.PartnerResponse, len(ps))
	for i, p := range ps {
		partners[i] = &contract.PartnerResponse{
			Name:     p.Name,
			Document: p.Document,
			Role:     p.Role,
			RoleCode: p.RoleCode,
			AgeRange: p.AgeRange,
		}
	}
	return partners
}
