package errors

import (
	"strings"
	"time"
)

// Kind buckets a raw failure into the taxonomy the UI reasons about.
type Kind string

// Failure kinds.
const (
	KindNetwork        Kind = "network"
	KindValidation     Kind = "validation"
	KindDatabase       Kind = "database"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindRateLimit      Kind = "rate_limit"
	KindUnknown        Kind = "unknown"
)

// Severity describes how serious a classified failure is.
type Severity string

// Severity levels.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError is a classified failure: a raw error bucketed into a kind with a
// severity and a message suitable for deciding what to show the user.
// It is never persisted.
type AppError struct {
	Kind      Kind      `json:"kind"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Retryable reports whether the failure is worth retrying.
func (e *AppError) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindDatabase, KindRateLimit, KindUnknown:
		return true
	default:
		return false
	}
}

// EventSink receives classified errors for monitoring. Emitting must never
// block or fail; the analytics package provides conforming implementations.
type EventSink interface {
	Error(appErr *AppError)
}

// NoopEventSink discards classified errors. Used when no sink is configured.
type NoopEventSink struct{}

// Error implements EventSink as a no-op.
func (NoopEventSink) Error(*AppError) {}

// Classifier turns raw failures into AppErrors and forwards every classified
// error to an event sink. It is injected wherever classification is needed
// rather than looked up as a global.
type Classifier struct {
	sink EventSink
	now  func() time.Time
}

// NewClassifier creates a classifier that reports to sink.
// A nil sink disables reporting.
func NewClassifier(sink EventSink) *Classifier {
	if sink == nil {
		sink = NoopEventSink{}
	}
	return &Classifier{sink: sink, now: time.Now}
}

// Classify buckets err into the taxonomy. Typed domain errors are mapped by
// code; everything else falls back to message-substring matching, ending in
// the unknown bucket.
func (c *Classifier) Classify(err error) *AppError {
	appErr := c.classify(err)
	c.sink.Error(appErr)
	return appErr
}

func (c *Classifier) classify(err error) *AppError {
	if err == nil {
		return c.newError(KindUnknown, SeverityMedium, "An unexpected error occurred. Please try again.", "")
	}

	// Already classified; pass through untouched.
	var appErr *AppError
	if As(err, &appErr) {
		return appErr
	}

	// Typed domain errors map directly by code.
	var domErr *Error
	if As(err, &domErr) {
		switch domErr.Code {
		case CodeValidation:
			return c.newError(KindValidation, SeverityLow, domErr.Message, string(domErr.Code))
		case CodeRateLimited:
			return c.newError(KindRateLimit, SeverityMedium, "Too many requests. Please wait a moment and try again.", string(domErr.Code))
		case CodeAlreadyExists:
			return c.newError(KindDatabase, SeverityLow, domErr.Message, string(domErr.Code))
		case CodeUnavailable, CodeInternal:
			return c.newError(KindDatabase, SeverityHigh, "Database connection error. Please try again later.", string(domErr.Code))
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "fetch"), strings.Contains(msg, "network"),
		strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"):
		return c.newError(KindNetwork, SeverityHigh, "Network connection error. Please check your internet connection.", "")
	case strings.Contains(msg, "database"), strings.Contains(msg, "sqlite"), strings.Contains(msg, "sql"):
		return c.newError(KindDatabase, SeverityHigh, "Database connection error. Please try again later.", "")
	case strings.Contains(msg, "validation"):
		return c.newError(KindValidation, SeverityLow, err.Error(), "")
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"):
		return c.newError(KindRateLimit, SeverityMedium, "Too many requests. Please wait a moment and try again.", "")
	default:
		return c.newError(KindUnknown, SeverityMedium, "An unexpected error occurred. Please try again.", "")
	}
}

func (c *Classifier) newError(kind Kind, severity Severity, message, code string) *AppError {
	return &AppError{
		Kind:      kind,
		Severity:  severity,
		Message:   message,
		Code:      code,
		Timestamp: c.now(),
	}
}

// UserMessage returns the user-facing sentence for a classified failure.
// Validation errors carry their own text; every other kind maps to a canned
// message.
func UserMessage(appErr *AppError) string {
	switch appErr.Kind {
	case KindNetwork:
		return "Please check your internet connection and try again."
	case KindDatabase:
		return "We're experiencing technical difficulties. Please try again in a moment."
	case KindValidation:
		return appErr.Message
	case KindAuthentication:
		return "Please log in again to continue."
	case KindAuthorization:
		return "You don't have permission to perform this action."
	case KindRateLimit:
		return "You're making too many requests. Please wait a moment."
	default:
		return "Something went wrong. Please try again."
	}
}

// RecoveryAdvice tells the form UI what to do after a failed submission.
type RecoveryAdvice struct {
	Action     string        // "retry", "fix", or "wait"
	Message    string
	CanRetry   bool
	RetryDelay time.Duration // only set for the wait action
}

// Recovery maps a classified failure to the action the form should take.
// Cached input is preserved across every retryable outcome.
func Recovery(appErr *AppError) RecoveryAdvice {
	switch appErr.Kind {
	case KindNetwork:
		return RecoveryAdvice{
			Action:   "retry",
			Message:  `Network error. Your data has been saved. Click "Try Again" to submit.`,
			CanRetry: true,
		}
	case KindValidation:
		return RecoveryAdvice{Action: "fix", Message: appErr.Message, CanRetry: false}
	case KindRateLimit:
		return RecoveryAdvice{
			Action:     "wait",
			Message:    "Too many submissions. Please wait a moment before trying again.",
			CanRetry:   true,
			RetryDelay: 5 * time.Second,
		}
	case KindDatabase:
		return RecoveryAdvice{
			Action:   "retry",
			Message:  "Server error. Your data has been saved. Please try again.",
			CanRetry: true,
		}
	default:
		return RecoveryAdvice{Action: "retry", Message: "An error occurred. Please try again.", CanRetry: true}
	}
}
