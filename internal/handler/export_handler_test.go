package handler_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"citypulse/backend/internal/handler"
	"citypulse/backend/internal/service"
	"citypulse/backend/internal/service/mock"
)

func TestExportHandler_Export_CSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockExportService(ctrl)
	h := handler.NewExportHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/export/comments", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		ExportCSV(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w io.Writer) error {
			_, err := w.Write([]byte("ID,Comment\n1,Great service\n"))
			return err
		})
	mockService.EXPECT().
		Filename("csv").
		Return("comments_citypulse_20260301.csv")

	err := h.Export(c)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, `attachment; filename="comments_citypulse_20260301.csv"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, "ID,Comment\n1,Great service\n", rec.Body.String())
}

func TestExportHandler_Export_Excel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockExportService(ctrl)
	h := handler.NewExportHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/export/comments?format=xlsx", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		ExportExcel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w io.Writer) error {
			_, err := w.Write([]byte{0x50, 0x4B, 0x03, 0x04})
			return err
		})
	mockService.EXPECT().
		Filename("xlsx").
		Return("comments_citypulse_20260301.xlsx")

	err := h.Export(c)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, []byte{0x50, 0x4B, 0x03, 0x04}, rec.Body.Bytes())
}

func TestExportHandler_Export_UnsupportedFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockExportService(ctrl)
	h := handler.NewExportHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/export/comments?format=pdf", nil)
	c, rec := newTestContext(e, req)

	err := h.Export(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandler_Export_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockExportService(ctrl)
	h := handler.NewExportHandlerHelper(mockService)

	e := newTestEcho()
	req := newJSONRequest(http.MethodGet, "/export/comments", nil)
	c, rec := newTestContext(e, req)

	mockService.EXPECT().
		ExportCSV(gomock.Any(), gomock.Any()).
		Return(service.ErrNotFound)

	err := h.Export(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
