package contract

import "entitysearch/cmd/internal/domain/entity"

type RecentSearchesResponse struct {
	Searches []entity.RecentSearch `json:"searches"`
}

type ExportResponse struct {
	Key     string `json:"key"`
	Entries int    `json:"entries"`
}
