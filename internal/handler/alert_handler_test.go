package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"citypulse/backend/internal/handler"
	"citypulse/backend/internal/model"
	"citypulse/backend/internal/service"
	"citypulse/backend/internal/service/mock"
)

func TestAlertHandler_List_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockAlertService(ctrl)
	h := handler.NewAlertHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/alerts", nil)
	c, rec := newTestContext(e, req)

	url := "https://transit.example.com/alerts/1"
	published := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	alerts := []model.ServiceAlert{
		{
			ID:          2,
			Title:       "Line 3 detour",
			Summary:     "Buses reroute via Main St",
			URL:         &url,
			PublishedAt: &published,
			CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        1,
			Title:     "Elevator outage",
			Summary:   "Central Station elevator closed",
			CreatedAt: time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
		},
	}

	mockService.EXPECT().
		List(gomock.Any(), 0).
		Return(alerts, nil)

	err := h.List(c)
	require.NoError(t, err)

	var resp []handler.AlertResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Len(t, resp, 2)
	require.Equal(t, int64(2), resp[0].ID)
	require.Equal(t, "Line 3 detour", resp[0].Title)
	require.NotNil(t, resp[0].PublishedAt)
	require.Equal(t, "2026-03-01T08:00:00Z", *resp[0].PublishedAt)
	require.Nil(t, resp[1].PublishedAt)
}

func TestAlertHandler_Refresh_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockAlertService(ctrl)
	h := handler.NewAlertHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/alerts/refresh", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		Refresh(gomock.Any()).
		Return(&service.AlertRefreshResult{Created: 3, Skipped: 1}, nil)

	err := h.Refresh(c)
	require.NoError(t, err)

	var resp handler.AlertRefreshResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, 3, resp.Created)
	require.Equal(t, 1, resp.Skipped)
	require.False(t, resp.NotModified)
}

func TestAlertHandler_Refresh_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockAlertService(ctrl)
	h := handler.NewAlertHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/alerts/refresh", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		Refresh(gomock.Any()).
		Return(nil, service.ErrAlertsNotConfigured)

	err := h.Refresh(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertHandler_Refresh_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockAlertService(ctrl)
	h := handler.NewAlertHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodPost, "/alerts/refresh", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		Refresh(gomock.Any()).
		Return(nil, service.ErrAlertFetch)

	err := h.Refresh(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}
