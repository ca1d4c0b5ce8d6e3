package errors

import (
	"context"
	"time"
)

// Level grades a user-facing notification.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Notification is the transient message surfaced to the user for a failed
// network boundary (submission, recommendation list, explanation).
type Notification struct {
	Level     Level
	Code      ErrorCode
	Message   string
	Retryable bool
}

// Notifier delivers notifications to whatever view is currently attached.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Logger is the subset of logger.Logger the reporter writes to.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Reporter normalizes failures from network boundaries, logs them and pushes a
// notification. Step validation failures are local and must not be reported.
type Reporter struct {
	logger   Logger
	notifier Notifier
}

// NewReporter returns a reporter. A nil notifier only logs.
func NewReporter(logger Logger, notifier Notifier) *Reporter {
	return &Reporter{logger: logger, notifier: notifier}
}

// Report handles err raised by operation op and returns its normalized form.
func (r *Reporter) Report(ctx context.Context, op string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := r.normalizeError(err)

	if r.logger != nil {
		r.logger.Error("operation failed", map[string]interface{}{
			"operation":     op,
			"errorCode":     string(stdErr.Code),
			"message":       stdErr.Message,
			"details":       stdErr.Details,
			"retryable":     stdErr.Retryable,
			"retries":       GetRetryCount(stdErr.Code),
			"errorCategory": GetErrorCategory(stdErr.Code),
		})
	}

	if r.notifier != nil && stdErr.Code != ErrCodeStepValidationFailed {
		level := LevelError
		if stdErr.Retryable {
			level = LevelWarning
		}
		r.notifier.Notify(ctx, Notification{
			Level:     level,
			Code:      stdErr.Code,
			Message:   stdErr.Message,
			Retryable: stdErr.Retryable,
		})
	}
	return stdErr
}

// normalizeError ensures we always have a StandardError
func (r *Reporter) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
