package handler

import (
	"context"
	"net/http"

	"entitysearch/cmd/internal/contract"
	"entitysearch/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type HistoryService interface {
	GetRecentSearches() *contract.RecentSearchesResponse
	ClearRecentSearches(ctx context.Context) apierror.ErrorResponse
	ExportRecentSearches(ctx context.Context) (*contract.ExportResponse, apierror.ErrorResponse)
}

type DefaultHistoryRoute struct {
	HistoryService HistoryService
}

func NewHistoryRoute(historyService HistoryService) *DefaultHistoryRoute {
	return &DefaultHistoryRoute{HistoryService: historyService}
}

func (h *DefaultHistoryRoute) GetRecentSearches(c echo.Context) error {
	return c.JSON(http.StatusOK, h.HistoryService.GetRecentSearches())
}

func (h *DefaultHistoryRoute) ClearRecentSearches(c echo.Context) error {
	if apierr := h.HistoryService.ClearRecentSearches(c.Request().Context()); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DefaultHistoryRoute) ExportRecentSearches(c echo.Context) error {
	resp, apierr := h.HistoryService.ExportRecentSearches(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, resp)
}
