package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidWindow        ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeInvalidCapital       ErrorCode = 105
	ErrCodeInvalidRate          ErrorCode = 106

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeEmptySeries           ErrorCode = 203
	ErrCodeUnsortedSeries        ErrorCode = 204
	ErrCodeDuplicateDate         ErrorCode = 205
	ErrCodeCacheFailed           ErrorCode = 206

	// Strategy errors (300-399)
	ErrCodeUnknownStrategy      ErrorCode = 300
	ErrCodeStrategyConfigError  ErrorCode = 301
	ErrCodeSignalLengthMismatch ErrorCode = 302

	// Backtest errors (400-499)
	ErrCodeBacktestNoData        ErrorCode = 400
	ErrCodeBacktestConfigError   ErrorCode = 401
	ErrCodeBacktestNoDatasource  ErrorCode = 402
	ErrCodeBacktestWriteFailed   ErrorCode = 403
	ErrCodeBacktestNoResultsDir  ErrorCode = 404
	ErrCodeRunCancelled          ErrorCode = 405

	// Market data errors (500-599)
	ErrCodeMarketDataFetchFailed ErrorCode = 500
	ErrCodeMarketDataWriteFailed ErrorCode = 501
	ErrCodeInvalidProvider       ErrorCode = 502
)
