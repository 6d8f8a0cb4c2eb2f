package service

import "citypulse/backend/internal/translate"

// Export for testing
var IsValidURL = isValidURL
var OptionalString = optionalString
var MaskAPIKey = maskAPIKey
var IsMaskedKey = isMaskedKey
var Snippet = snippet
var AlertFromItem = alertFromItem

const (
	KeyTranslationProvider      = keyTranslationProvider
	KeyTranslationAPIKey        = keyTranslationAPIKey
	KeyTranslationBaseURL       = keyTranslationBaseURL
	KeyTranslationModel         = keyTranslationModel
	KeyTranslationAutoTranslate = keyTranslationAutoTranslate
	KeyTranslationRateLimit     = keyTranslationRateLimit
	KeyGeneralAgencyName        = keyGeneralAgencyName
	KeyGeneralCommentMaxLength  = keyGeneralCommentMaxLength
	KeyAlertsFeedURL            = keyAlertsFeedURL
	KeyAlertsHTTPETag           = keyAlertsHTTPETag
	KeyAlertsHTTPModified       = keyAlertsHTTPModified
	KeyAlertsLastError          = keyAlertsLastError
	KeyAlertsLastRefresh        = keyAlertsLastRefresh
	KeyUserUsername             = keyUserUsername
	KeyUserNickname             = keyUserNickname
	KeyUserEmail                = keyUserEmail
	KeyUserPasswordHash         = keyUserPasswordHash
	KeyUserJWTSecret            = keyUserJWTSecret
)

var (
	ErrUsernameRequiredHelper        = ErrUsernameRequired
	ErrInvalidUsernameHelper         = ErrInvalidUsername
	ErrEmailRequiredHelper           = ErrEmailRequired
	ErrPasswordRequiredHelper        = ErrPasswordRequired
	ErrPasswordTooShortHelper        = ErrPasswordTooShort
	ErrUserExistsHelper              = ErrUserExists
	ErrUserNotFoundHelper            = ErrUserNotFound
	ErrInvalidPasswordHelper         = ErrInvalidPassword
	ErrCurrentPasswordRequiredHelper = ErrCurrentPasswordRequired
	ErrSamePasswordHelper            = ErrSamePassword
	ErrInvalidTokenHelper            = ErrInvalidToken
)

// State setters for tests that need a service mid-operation.
func SetAnalysisServiceRunning(s AnalysisService, v bool) {
	if as, ok := s.(*analysisService); ok {
		as.isRunning = v
	}
}

func SetAlertServiceRefreshing(s AlertService, v bool) {
	if als, ok := s.(*alertService); ok {
		als.isRefreshing = v
	}
}

// SetTranslationProviderFactory swaps the provider constructor so tests can
// inject a stub without real credentials.
func SetTranslationProviderFactory(s TranslationService, fn func(translate.Config) (translate.Provider, error)) {
	if ts, ok := s.(*translationService); ok {
		ts.newProvider = fn
	}
}
