package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidProposal      ErrorCode = 102
	ErrCodeInvalidVersion       ErrorCode = 103
	ErrCodeIncompatibleVersion  ErrorCode = 104
	ErrCodeInvalidScenario      ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106

	// Data errors (200-299)
	ErrCodeDataUnavailable    ErrorCode = 200
	ErrCodeAccountUnavailable ErrorCode = 201
	ErrCodeNoOptionsChain     ErrorCode = 202
	ErrCodeNoExpirations      ErrorCode = 203
	ErrCodeInsufficientBars   ErrorCode = 204

	// Risk errors (300-399)
	ErrCodeRiskViolation    ErrorCode = 300
	ErrCodeInvalidRiskInput ErrorCode = 301
	ErrCodeTradingHalted    ErrorCode = 302

	// Scoring errors (400-499)
	ErrCodeScoringFailed   ErrorCode = 400
	ErrCodeSelectionFailed ErrorCode = 401

	// Execution errors (500-599)
	ErrCodeOrderFailed         ErrorCode = 500
	ErrCodeClosePositionFailed ErrorCode = 501
	ErrCodeRecorderFailed      ErrorCode = 502

	// Alert errors (800-899)
	ErrCodeAlertFailed ErrorCode = 800
)

// Category names the range an ErrorCode belongs to.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryValidation Category = "validation"
	CategoryData       Category = "data"
	CategoryRisk       Category = "risk"
	CategoryScoring    Category = "scoring"
	CategoryExecution  Category = "execution"
	CategoryAlert      Category = "alert"
)

// Category returns the category of the code, used as a metrics label.
func (c ErrorCode) Category() Category {
	switch {
	case c >= 100 && c < 200:
		return CategoryValidation
	case c >= 200 && c < 300:
		return CategoryData
	case c >= 300 && c < 400:
		return CategoryRisk
	case c >= 400 && c < 500:
		return CategoryScoring
	case c >= 500 && c < 600:
		return CategoryExecution
	case c >= 800 && c < 900:
		return CategoryAlert
	default:
		return CategoryGeneral
	}
}
