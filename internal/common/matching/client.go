// Package matching is the HTTP adapter for the tutor matching service: survey
// submission, recommendation queries and on-demand explanations.
package matching

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tutor-onboarding/internal/common/config"
	"tutor-onboarding/internal/common/errors"
	httpclient "tutor-onboarding/internal/common/http"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/common/observability"
	"tutor-onboarding/internal/common/validation"
	"tutor-onboarding/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const ServiceName = "matching"

const (
	pathSurveys         = "/api/surveys"
	pathTutors          = "/api/recommendations/tutors"
	pathPosts           = "/api/recommendations/posts"
	pathExplain         = "/api/recommendations/explain"
	headerRequestID     = "X-Request-ID"
	headerAuthorization = "Authorization"
)

// envelope is the response wrapper used by every matching endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to the matching service. It implements both the survey
// Submitter and the recommendation Querier.
type Client struct {
	baseURL string
	token   string
	http    *httpclient.Client
	obs     *observability.Observability
	logger  logger.Logger
}

// NewClient builds a client from the apis.matching section of cfg.
func NewClient(cfg *config.Config, obs *observability.Observability, log logger.Logger) *Client {
	m := cfg.APIs.Matching
	return &Client{
		baseURL: strings.TrimRight(m.BaseURL, "/"),
		token:   m.APIToken,
		http:    httpclient.NewClient(config.GetDuration(m.Timeout), m.MaxRetries),
		obs:     obs,
		logger:  logger.ForComponent(log, "matching-client"),
	}
}

// NewClientWithHTTP builds a client on top of an existing transport.
func NewClientWithHTTP(baseURL, token string, hc *httpclient.Client, obs *observability.Observability, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    hc,
		obs:     obs,
		logger:  logger.ForComponent(log, "matching-client"),
	}
}

// Submit validates the survey against the payload schema and posts it.
func (c *Client) Submit(ctx context.Context, answers models.SurveyAnswers) (*models.SubmissionResult, error) {
	if err := validation.SurveyPayloadError(answers); err != nil {
		return nil, err
	}
	var out models.SubmissionResult
	if err := c.call(ctx, "survey.submit", http.MethodPost, pathSurveys, nil, answers, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryTutors lists tutors recommended for the student behind q.
func (c *Client) QueryTutors(ctx context.Context, q models.RecommendationQuery) (*models.TutorRecommendationPage, error) {
	var out models.TutorRecommendationPage
	if err := c.call(ctx, "recommendation.tutors", http.MethodGet, pathTutors, queryValues(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryPosts lists student posts recommended for the tutor behind q.
func (c *Client) QueryPosts(ctx context.Context, q models.RecommendationQuery) (*models.PostRecommendationPage, error) {
	var out models.PostRecommendationPage
	if err := c.call(ctx, "recommendation.posts", http.MethodGet, pathPosts, queryValues(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Explain asks the AI explanation endpoint why req.TargetID matches req.SourceID.
func (c *Client) Explain(ctx context.Context, req models.ExplanationRequest) (*models.ExplanationResponse, error) {
	var out models.ExplanationResponse
	if err := c.call(ctx, "recommendation.explain", http.MethodPost, pathExplain, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func queryValues(q models.RecommendationQuery) url.Values {
	v := url.Values{}
	if q.SubjectOrPostID != "" {
		v.Set("subject", q.SubjectOrPostID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.MinScore > 0 {
		v.Set("minScore", strconv.FormatFloat(q.MinScore, 'f', -1, 64))
	}
	return v
}

func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	requestID := uuid.NewString()
	ctx, span := c.obs.StartSpan(ctx, "matching."+op,
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.String("request.id", requestID),
	)
	defer span.End()
	start := time.Now()

	err := c.do(ctx, method, path, query, body, requestID, out)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("matching call failed", map[string]interface{}{
			"operation": op,
			"requestId": requestID,
			"error":     err.Error(),
		})
	} else {
		c.logger.Debug("matching call completed", map[string]interface{}{
			"operation":  op,
			"requestId":  requestID,
			"durationMs": time.Since(start).Milliseconds(),
		})
	}
	c.obs.RecordOperation(ctx, op, status, time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, requestID string, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.NewInvalidPayloadError(err.Error())
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := c.http.DoWithRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set(headerAuthorization, "Bearer "+c.token)
		}
		req.Header.Set(headerRequestID, requestID)
		return req, nil
	})
	if err != nil {
		return wrap(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.NewExternalServiceError(ServiceName, fmt.Errorf("decode response: %w", err))
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return errors.NewExternalServiceError(ServiceName, stderrors.New(msg))
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.NewExternalServiceError(ServiceName, fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}

// wrap keeps context errors recognizable and tags everything else as a
// matching service failure.
func wrap(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, ok := errors.AsStandardError(err); ok {
		return err
	}
	return errors.NewExternalServiceError(ServiceName, err)
}
