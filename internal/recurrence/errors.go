package recurrence

import "fmt"

// ReasonCode identifies why a maintenance request failed validation.
type ReasonCode string

const (
	ReasonUnsupportedKind           ReasonCode = "UNSUPPORTED_RECURRENCE_KIND"
	ReasonMissingConfig             ReasonCode = "MISSING_RECURRENCE_CONFIG"
	ReasonInvalidDayOfWeekMask      ReasonCode = "INVALID_DAY_OF_WEEK_MASK"
	ReasonInvalidDayOfMonth         ReasonCode = "INVALID_DAY_OF_MONTH"
	ReasonAmbiguousMonthlySelector  ReasonCode = "AMBIGUOUS_OR_MISSING_MONTHLY_SELECTOR"
	ReasonInvalidOccurrenceSelector ReasonCode = "INVALID_OCCURRENCE_SELECTOR"
	ReasonInvalidMonthMask          ReasonCode = "INVALID_MONTH_MASK"
	ReasonMissingTimingField        ReasonCode = "MISSING_TIMING_FIELD"
	ReasonInvalidTimeWindow         ReasonCode = "INVALID_TIME_WINDOW"
)

// ValidationError is a user-facing, machine-checkable validation outcome.
// It is a deterministic function of the request and never worth retrying.
type ValidationError struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func validationErrorf(code ReasonCode, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports an encode-time failure: a required field missing
// for the selected kind, an unknown kind, or an inconsistent monthly
// selector that slipped past validation.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
