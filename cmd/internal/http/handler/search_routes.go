package handler

import (
	"context"
	"net/http"
	"strings"

	"entitysearch/cmd/internal/contract"
	"entitysearch/cmd/internal/domain/entity"
	"entitysearch/cmd/internal/utils"
	"entitysearch/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type SearchService interface {
	Search(ctx context.Context, req *contract.SearchRequest) (*contract.SearchResponse, apierror.ErrorResponse)
	Suggest(ctx context.Context, session string, req *contract.SuggestionRequest) (*contract.SuggestionResponse, apierror.ErrorResponse)
	GetEntity(ctx context.Context, id string) (*entity.Entity, apierror.ErrorResponse)
}

type DefaultSearchRoute struct {
	SearchService SearchService
}

func NewSearchRoute(searchService SearchService) *DefaultSearchRoute {
	return &DefaultSearchRoute{SearchService: searchService}
}

func (s *DefaultSearchRoute) Search(c echo.Context) error {
	var req contract.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}
	utils.Sanitize(&req)

	resp, apierr := s.SearchService.Search(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// Suggest serves predictive results. Requests are debounced per session,
// so a client typing fast only gets an answer for its last keystroke.
func (s *DefaultSearchRoute) Suggest(c echo.Context) error {
	var req contract.SuggestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedQueryError)
	}
	utils.Sanitize(&req)

	resp, apierr := s.SearchService.Suggest(c.Request().Context(), utils.GetSessionKey(c), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *DefaultSearchRoute) GetEntity(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("id", "string"))
	}

	found, apierr := s.SearchService.GetEntity(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, found)
}
