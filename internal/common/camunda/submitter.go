package camunda

import (
	"context"
	"encoding/json"
	"fmt"

	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/common/validation"
	"tutor-onboarding/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/google/uuid"
)

// processVariables are the variables a matching process instance starts with.
type processVariables struct {
	RequestID     string               `json:"requestId"`
	SurveyAnswers models.SurveyAnswers `json:"surveyAnswers"`
}

// SurveySubmitter submits a survey by starting the matching BPMN process and
// waiting for its result variables (survey, recommendations, aiAnalysis).
type SurveySubmitter struct {
	client    *Client
	processID string
	logger    logger.Logger
}

// NewSurveySubmitter starts processID for each submitted survey.
func NewSurveySubmitter(client *Client, processID string, log logger.Logger) *SurveySubmitter {
	return &SurveySubmitter{
		client:    client,
		processID: processID,
		logger:    logger.ForComponent(log, "camunda-submitter"),
	}
}

// Submit validates the payload, starts a process instance and waits for its
// result variables.
func (s *SurveySubmitter) Submit(ctx context.Context, answers models.SurveyAnswers) (*models.SubmissionResult, error) {
	if err := validation.SurveyPayloadError(answers); err != nil {
		return nil, err
	}

	vars := processVariables{RequestID: uuid.NewString(), SurveyAnswers: answers}

	result, err := s.client.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
		cmd, err := s.client.GetClient().NewCreateInstanceCommand().
			BPMNProcessId(s.processID).
			LatestVersion().
			VariablesFromObject(vars)
		if err != nil {
			return nil, fmt.Errorf("encode process variables: %w", err)
		}
		if s.client.config.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.client.config.RequestTimeout)
			defer cancel()
		}
		return cmd.WithResult().Send(ctx)
	}, "create-instance-with-result")
	if err != nil {
		return nil, err
	}

	resp := result.(*pb.CreateProcessInstanceWithResultResponse)
	s.logger.Info("matching process completed", map[string]interface{}{
		"processInstanceKey": resp.ProcessInstanceKey,
		"requestId":          vars.RequestID,
	})
	return decodeResult(resp.Variables, vars.RequestID)
}

// decodeResult reads the submission result from process result variables.
// The request id stands in for the survey id when the process sets none.
func decodeResult(variables, requestID string) (*models.SubmissionResult, error) {
	var out models.SubmissionResult
	if err := json.Unmarshal([]byte(variables), &out); err != nil {
		return nil, fmt.Errorf("decode process result: %w", err)
	}
	if out.Survey.ID == "" {
		out.Survey.ID = requestID
	}
	if out.Recommendations == nil {
		out.Recommendations = []models.TutorRecommendation{}
	}
	return &out, nil
}
