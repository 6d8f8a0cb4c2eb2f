package handler

// Export for testing
type ErrorResponse = errorResponse
type CommentResponse = commentResponse
type CommentListResponse = commentListResponse
type StatsResponse = statsResponse
type TrendPointResponse = trendPointResponse
type DashboardResponse = dashboardResponse
type AlertResponse = alertResponse
type AlertRefreshResponse = alertRefreshResponse
type AuthStatusResponse = authStatusResponse
type AuthResponseDTO = authResponse
type UserResponse = userResponse
type UpdateProfileResponseDTO = updateProfileResponse
type MessageResponse = messageResponse
type TranslationSettingsResponse = translationSettingsResponse
type TestTranslationResponse = testTranslationResponse
type GeneralSettingsResponse = generalSettingsResponse
type AlertSettingsResponse = alertSettingsResponse
type SiteInfoResponse = siteInfoResponse
type TaskStartedResponse = taskStartedResponse
type TaskResponse = taskResponse
type TaskResultResponse = taskResultResponse
type CancelResponse = cancelResponse

var NewCommentHandlerHelper = NewCommentHandler
var NewDashboardHandlerHelper = NewDashboardHandler
var NewAlertHandlerHelper = NewAlertHandler
var NewAuthHandlerHelper = NewAuthHandler
var NewSettingsHandlerHelper = NewSettingsHandler
var NewExportHandlerHelper = NewExportHandler
var NewAnalysisHandlerHelper = NewAnalysisHandler
var NewImportHandlerHelper = NewImportHandler

var WriteServiceError = writeServiceError
var WriteAuthError = writeAuthError
