package repository

import (
	"testing"

	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/domain/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *DefaultCompanyRepository {
	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewCompanyRepository(db)
}

func TestCompanyRepository_SaveAndFind(t *testing.T) {
	repo := newTestRepo(t)

	missing, err := repo.FindByCNPJ("11222333000181")
	require.NoError(t, err)
	assert.Nil(t, missing)

	company := &entity.Company{
		CNPJ:      "11222333000181",
		LegalName: "ACME LTDA",
		Found:     true,
		CachedAt:  1000,
		Partners: []*entity.CompanyPartner{
			{Name: "Ana"},
			{Name: "Bruno"},
		},
	}
	require.NoError(t, repo.Save(company))

	got, err := repo.FindByCNPJ("11222333000181")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ACME LTDA", got.LegalName)
	assert.True(t, got.Found)
	assert.Len(t, got.Partners, 2)

	// saving again replaces, not duplicates, the partner list
	company.LegalName = "ACME SA"
	company.Partners = []*entity.CompanyPartner{{Name: "Carla"}}
	require.NoError(t, repo.Save(company))

	got, err = repo.FindByCNPJ("11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "ACME SA", got.LegalName)
	require.Len(t, got.Partners, 1)
	assert.Equal(t, "Carla", got.Partners[0].Name)
}

func TestCompanyRepository_NegativeCacheRow(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(&entity.Company{CNPJ: "33000167000101", Found: false, CachedAt: 5}))

	got, err := repo.FindByCNPJ("33000167000101")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Found)
}

func TestCompanyRepository_DeleteExpired(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(&entity.Company{CNPJ: "old", Found: true, CachedAt: 10,
		Partners: []*entity.CompanyPartner{{Name: "Old Partner"}}}))
	require.NoError(t, repo.Save(&entity.Company{CNPJ: "new", Found: true, CachedAt: 100}))

	require.NoError(t, repo.DeleteExpired(50))

	old, err := repo.FindByCNPJ("old")
	require.NoError(t, err)
	assert.Nil(t, old)

	fresh, err := repo.FindByCNPJ("new")
	require.NoError(t, err)
	assert.NotNil(t, fresh)

	var partners int64
	require.NoError(t, repo.db.Model(&entity.CompanyPartner{}).Count(&partners).Error)
	assert.Zero(t, partners)
}
