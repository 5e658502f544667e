package contract

import "entitysearch/cmd/internal/domain/entity"

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

type SearchRequest struct {
	Type        string   `query:"type" validate:"required"`
	Value       string   `query:"value"`
	EntityTypes []string `query:"entity_types" validate:"omitempty,max=2,nodupes,dive,oneof=individual company"`
	Page        int      `query:"page" validate:"omitempty,min=1"`
	PageSize    int      `query:"page_size" validate:"omitempty,min=1,max=50"`
}

type SuggestionRequest struct {
	Type  string `query:"type" validate:"required"`
	Value string `query:"value"`
}

type SearchResponse struct {
	Type       string          `json:"type"`
	Value      string          `json:"value"`
	Results    []entity.Entity `json:"results"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type SuggestionResponse struct {
	Suggestions []entity.Entity `json:"suggestions"`
}
