package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"tutor-onboarding/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

// ==========================
// Retry Tests
// ==========================

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	client := createTestClient(3)
	calls := 0

	result, err := client.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return "done", nil
	}, "test-op")

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	client := createTestClient(3)
	calls := 0

	_, err := client.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("rpc error: code = NotFound desc = no process with id tutor-matching")
	}, "create-instance")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.HasCode(err, errors.ErrCodeExternalService))
	assert.Contains(t, err.Error(), "create-instance")
}

func TestExecuteWithRetry_ExhaustsRetries(t *testing.T) {
	client := createTestClient(2)
	calls := 0

	_, err := client.ExecuteWithRetry(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("broker unavailable")
	}, "create-instance")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Contains(t, stdErr.Details, "after 3 attempts")
}

func TestExecuteWithRetry_KeepsContextErrors(t *testing.T) {
	client := createTestClient(3)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := client.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
		cancel()
		return nil, stderrors.New("unavailable")
	}, "create-instance")

	assert.ErrorIs(t, err, context.Canceled)
}

// ==========================
// Error Mapping Tests
// ==========================

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"deadline", stderrors.New("rpc error: code = DeadlineExceeded desc = context deadline exceeded"), errors.ErrCodeTimeout},
		{"timeout", stderrors.New("request timeout"), errors.ErrCodeTimeout},
		{"not deployed", stderrors.New("process not found"), errors.ErrCodeExternalService},
		{"other", stderrors.New("boom"), errors.ErrCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapZeebeError(tt.err, "op", 0)
			assert.True(t, errors.HasCode(mapped, tt.code))
			assert.ErrorIs(t, mapped, tt.err)
		})
	}
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(stderrors.New("connection reset by peer")))
	assert.True(t, isRetryableZeebeError(stderrors.New("RESOURCE_EXHAUSTED: backpressure")))
	assert.False(t, isRetryableZeebeError(stderrors.New("invalid argument")))
}

// ==========================
// Result Decoding Tests
// ==========================

func TestDecodeResult(t *testing.T) {
	vars := `{
		"survey": {"id": "survey-9", "studentId": "student-1"},
		"recommendations": [{"tutorId": "tutor-1", "matchScore": 0.92}],
		"aiAnalysis": "Phù hợp",
		"surveyAnswers": {"gradeLevel": "Lớp 10"}
	}`

	res, err := decodeResult(vars, "req-1")
	require.NoError(t, err)

	assert.Equal(t, "survey-9", res.Survey.ID)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, 0.92, res.Recommendations[0].MatchScore)
	require.NotNil(t, res.AIAnalysis)
	assert.Equal(t, "Phù hợp", *res.AIAnalysis)
}

func TestDecodeResult_FallsBackToRequestID(t *testing.T) {
	res, err := decodeResult(`{}`, "req-1")
	require.NoError(t, err)

	assert.Equal(t, "req-1", res.Survey.ID)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
}

func TestDecodeResult_InvalidJSON(t *testing.T) {
	_, err := decodeResult(`{not json`, "req-1")
	assert.Error(t, err)
}
