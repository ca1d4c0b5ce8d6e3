package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	entries []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, fields)
}

func TestStandardError_UnwrapAndAs(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := fmt.Errorf("submit: %w", NewSubmissionFailedError(cause))

	stdErr, ok := AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeSubmissionFailed, stdErr.Code)
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, HasCode(err, ErrCodeSubmissionFailed))
	assert.False(t, HasCode(stderrors.New("plain"), ErrCodeSubmissionFailed))
}

func TestNewStepValidationError(t *testing.T) {
	err := NewStepValidationError(1, "subjects", "Vui lòng chọn ít nhất một môn học")

	assert.Equal(t, "Vui lòng chọn ít nhất một môn học", err.Message)
	assert.False(t, err.Retryable)
	assert.Equal(t, 1, err.Metadata["step"])
	assert.Equal(t, "subjects", err.Metadata["stepKey"])
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeStepValidationFailed, "VALIDATION"},
		{ErrCodeInvalidPayload, "VALIDATION"},
		{ErrCodeSubmissionTimeout, "SUBMISSION"},
		{ErrCodeRecommendationFetchFailed, "RECOMMENDATION"},
		{ErrCodeExplanationTimeout, "EXPLANATION"},
		{ErrCodeDraftStoreFailed, "STORAGE"},
		{ErrCodeTimeout, "NETWORK"},
		{ErrCodeInternal, "OTHER"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

func TestRetryCounts(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeSubmissionFailed))
	assert.Equal(t, 1, GetRetryCount(ErrCodeExplanationTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeStepValidationFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeSubmissionInProgress))
}

func TestReporter_ReportNotifiesAndLogs(t *testing.T) {
	log := &recordingLogger{}
	var got []Notification
	r := NewReporter(log, NotifierFunc(func(_ context.Context, n Notification) {
		got = append(got, n)
	}))

	stdErr := r.Report(context.Background(), "explanation.fetch",
		NewExplanationFetchFailedError("tutor-1", stderrors.New("503")))

	require.NotNil(t, stdErr)
	require.Len(t, got, 1)
	assert.Equal(t, LevelWarning, got[0].Level)
	assert.Equal(t, ErrCodeExplanationFetchFailed, got[0].Code)
	require.Len(t, log.entries, 1)
	assert.Equal(t, "EXPLANATION", log.entries[0]["errorCategory"])
}

func TestReporter_NormalizesPlainErrors(t *testing.T) {
	var got []Notification
	r := NewReporter(nil, NotifierFunc(func(_ context.Context, n Notification) {
		got = append(got, n)
	}))

	stdErr := r.Report(context.Background(), "op", stderrors.New("boom"))

	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	require.Len(t, got, 1)
	assert.Equal(t, LevelError, got[0].Level)
}

func TestReporter_SkipsValidationErrorsAndNil(t *testing.T) {
	calls := 0
	r := NewReporter(nil, NotifierFunc(func(context.Context, Notification) { calls++ }))

	assert.Nil(t, r.Report(context.Background(), "op", nil))
	r.Report(context.Background(), "wizard.next", NewStepValidationError(0, "gradeLevel", "missing"))

	assert.Equal(t, 0, calls)
}
