package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"citypulse/backend/internal/handler"
	"citypulse/backend/internal/service"
	"citypulse/backend/internal/service/mock"
)

func TestSettingsHandler_GetSiteInfo_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/site", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		GetGeneralSettings(gomock.Any()).
		Return(&service.GeneralSettings{AgencyName: "Metro Norte", CommentMaxLength: 500}, nil)

	err := h.GetSiteInfo(c)
	require.NoError(t, err)

	var resp handler.SiteInfoResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "Metro Norte", resp.AgencyName)
	require.Equal(t, 500, resp.CommentMaxLength)
}

func TestSettingsHandler_GetTranslationSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/settings/translation", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		GetTranslationSettings(gomock.Any()).
		Return(&service.TranslationSettings{
			Provider:      "openai",
			APIKey:        "sk-****cdef",
			Model:         "gpt-4o-mini",
			AutoTranslate: true,
			RateLimit:     10,
		}, nil)

	err := h.GetTranslationSettings(c)
	require.NoError(t, err)

	var resp handler.TranslationSettingsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "openai", resp.Provider)
	require.Equal(t, "sk-****cdef", resp.APIKey)
	require.True(t, resp.AutoTranslate)
	require.Equal(t, 10, resp.RateLimit)
}

func TestSettingsHandler_UpdateTranslationSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"provider":      "openai",
		"apiKey":        "sk-1234567890abcdef",
		"model":         "gpt-4o-mini",
		"autoTranslate": true,
		"rateLimit":     10,
	}
	req := newJSONRequest(http.MethodPut, "/settings/translation", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		SetTranslationSettings(gomock.Any(), &service.TranslationSettings{
			Provider:      "openai",
			APIKey:        "sk-1234567890abcdef",
			Model:         "gpt-4o-mini",
			AutoTranslate: true,
			RateLimit:     10,
		}).
		Return(nil)

	mockService.EXPECT().
		GetTranslationSettings(gomock.Any()).
		Return(&service.TranslationSettings{
			Provider:      "openai",
			APIKey:        "sk-****cdef",
			Model:         "gpt-4o-mini",
			AutoTranslate: true,
			RateLimit:     10,
		}, nil)

	err := h.UpdateTranslationSettings(c)
	require.NoError(t, err)

	var resp handler.TranslationSettingsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "sk-****cdef", resp.APIKey, "stored key should come back masked")
}

func TestSettingsHandler_UpdateTranslationSettings_UnknownProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No service expectations: an unknown provider never reaches the store.
	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"provider": "bard",
		"apiKey":   "sk-1234567890abcdef",
		"model":    "some-model",
	}
	req := newJSONRequest(http.MethodPut, "/settings/translation", reqBody)
	c, rec := newTestContext(e, req)

	err := h.UpdateTranslationSettings(c)
	require.NoError(t, err)

	var resp map[string]string
	assertJSONResponse(t, rec, http.StatusBadRequest, &resp)
	require.Equal(t, "provider must be one of: openai anthropic compatible", resp["error"])
}

func TestSettingsHandler_TestTranslationSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"provider": "openai",
		"apiKey":   "sk-test",
		"model":    "gpt-4o-mini",
	}
	req := newJSONRequest(http.MethodPost, "/settings/translation/test", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		TestTranslation(gomock.Any(), "openai", "sk-test", "", "gpt-4o-mini").
		Return("This is a test.", nil)

	err := h.TestTranslationSettings(c)
	require.NoError(t, err)

	var resp handler.TestTranslationResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.True(t, resp.Success)
	require.Equal(t, "This is a test.", resp.Result)
}

func TestSettingsHandler_TestTranslationSettings_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"provider": "openai",
		"apiKey":   "sk-bad",
	}
	req := newJSONRequest(http.MethodPost, "/settings/translation/test", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		TestTranslation(gomock.Any(), "openai", "sk-bad", "", "").
		Return("", errors.New("provider rejected the key"))

	err := h.TestTranslationSettings(c)
	require.NoError(t, err)

	var resp handler.TestTranslationResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.False(t, resp.Success)
	require.Equal(t, "provider rejected the key", resp.Error)
}

func TestSettingsHandler_GetGeneralSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/settings/general", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		GetGeneralSettings(gomock.Any()).
		Return(&service.GeneralSettings{AgencyName: "CityPulse", CommentMaxLength: 1000}, nil)

	err := h.GetGeneralSettings(c)
	require.NoError(t, err)

	var resp handler.GeneralSettingsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "CityPulse", resp.AgencyName)
	require.Equal(t, 1000, resp.CommentMaxLength)
}

func TestSettingsHandler_UpdateGeneralSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"agencyName":       "Metro Norte",
		"commentMaxLength": 500,
	}
	req := newJSONRequest(http.MethodPut, "/settings/general", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		SetGeneralSettings(gomock.Any(), &service.GeneralSettings{
			AgencyName:       "Metro Norte",
			CommentMaxLength: 500,
		}).
		Return(nil)

	mockService.EXPECT().
		GetGeneralSettings(gomock.Any()).
		Return(&service.GeneralSettings{AgencyName: "Metro Norte", CommentMaxLength: 500}, nil)

	err := h.UpdateGeneralSettings(c)
	require.NoError(t, err)

	var resp handler.GeneralSettingsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "Metro Norte", resp.AgencyName)
	require.Equal(t, 500, resp.CommentMaxLength)
}

func TestSettingsHandler_GetAlertSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/settings/alerts", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		GetAlertSettings(gomock.Any()).
		Return(&service.AlertSettings{
			FeedURL:     "https://transit.example.com/alerts.rss",
			LastRefresh: "2026-03-01T12:00:00Z",
		}, nil)

	err := h.GetAlertSettings(c)
	require.NoError(t, err)

	var resp handler.AlertSettingsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "https://transit.example.com/alerts.rss", resp.FeedURL)
	require.Equal(t, "2026-03-01T12:00:00Z", resp.LastRefresh)
	require.Empty(t, resp.LastError)
}

func TestSettingsHandler_UpdateAlertSettings_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"feedUrl": "https://transit.example.com/alerts.rss",
	}
	req := newJSONRequest(http.MethodPut, "/settings/alerts", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		SetAlertSettings(gomock.Any(), &service.AlertSettings{
			FeedURL: "https://transit.example.com/alerts.rss",
		}).
		Return(nil)

	mockService.EXPECT().
		GetAlertSettings(gomock.Any()).
		Return(&service.AlertSettings{FeedURL: "https://transit.example.com/alerts.rss"}, nil)

	err := h.UpdateAlertSettings(c)
	require.NoError(t, err)

	var resp handler.AlertSettingsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "https://transit.example.com/alerts.rss", resp.FeedURL)
}

func TestSettingsHandler_UpdateAlertSettings_InvalidURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockSettingsService(ctrl)
	h := handler.NewSettingsHandlerHelper(mockService)

	e := newTestEcho()
	reqBody := map[string]interface{}{
		"feedUrl": "not a url",
	}
	req := newJSONRequest(http.MethodPut, "/settings/alerts", reqBody)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		SetAlertSettings(gomock.Any(), gomock.Any()).
		Return(service.ErrInvalid)

	err := h.UpdateAlertSettings(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
