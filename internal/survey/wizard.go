package survey

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"tutor-onboarding/internal/common/errors"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/common/metrics"
	"tutor-onboarding/internal/models"
)

// Submitter sends a finished survey to the matching service.
type Submitter interface {
	Submit(ctx context.Context, answers models.SurveyAnswers) (*models.SubmissionResult, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, answers models.SurveyAnswers) (*models.SubmissionResult, error)

func (f SubmitterFunc) Submit(ctx context.Context, answers models.SurveyAnswers) (*models.SubmissionResult, error) {
	return f(ctx, answers)
}

// Wizard drives the onboarding survey one step at a time. It owns the answers
// until a successful submission hands a snapshot to the Submitter, after which
// it resets to the first step and can be reused immediately.
type Wizard struct {
	config    *Config
	steps     []Step
	submitter Submitter
	reporter  *errors.Reporter
	logger    logger.Logger

	mu           sync.Mutex
	currentStep  int
	isSubmitting bool
	answers      *Answers
}

// NewWizard starts a survey at the first step with default answers. A nil cfg
// takes the package defaults.
func NewWizard(cfg *Config, submitter Submitter, reporter *errors.Reporter, log logger.Logger) *Wizard {
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	return &Wizard{
		config:    cfg,
		steps:     DefaultSteps(),
		submitter: submitter,
		reporter:  reporter,
		logger:    logger.ForComponent(log, "survey-wizard"),
		answers:   NewAnswers(),
	}
}

// CurrentStep returns the zero-based index of the step on screen.
func (w *Wizard) CurrentStep() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentStep
}

func (w *Wizard) TotalSteps() int { return len(w.steps) }

// Step returns the descriptor of the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps[w.currentStep]
}

// IsSubmitting reports whether a submission is in flight.
func (w *Wizard) IsSubmitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isSubmitting
}

// Answers returns a copy of the current answers. Changes to the copy do not
// reach the wizard; question components write through Update.
func (w *Wizard) Answers() *Answers {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.answers.clone()
}

// Update applies fn to the live answers under the wizard's lock. fn must not
// call back into the wizard.
func (w *Wizard) Update(fn func(a *Answers)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.answers)
}

// Progress returns completion of the survey in percent.
func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return float64(w.currentStep+1) / float64(len(w.steps)) * 100
}

// Next validates the current step and advances. On the last step it submits
// instead, returning the submission result.
func (w *Wizard) Next(ctx context.Context) (*models.SubmissionResult, error) {
	w.mu.Lock()
	idx := w.currentStep
	step := w.steps[idx]
	res := step.Validate(w.answers)
	if !res.Valid {
		w.mu.Unlock()
		metrics.SurveyStepTransitions.WithLabelValues(step.Key, "next", metrics.OutcomeRejected).Inc()
		w.logger.Debug("step rejected", map[string]interface{}{
			"step":    idx,
			"stepKey": step.Key,
			"message": res.Message,
		})
		return nil, errors.NewStepValidationError(idx, step.Key, res.Message)
	}
	if idx < len(w.steps)-1 {
		w.currentStep++
		w.mu.Unlock()
		metrics.SurveyStepTransitions.WithLabelValues(step.Key, "next", metrics.OutcomeSuccess).Inc()
		return nil, nil
	}
	w.mu.Unlock()
	return w.Submit(ctx)
}

// Previous goes back one step without validation. It reports whether the step changed.
func (w *Wizard) Previous() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.currentStep == 0 {
		return false
	}
	metrics.SurveyStepTransitions.WithLabelValues(w.steps[w.currentStep].Key, "previous", metrics.OutcomeSuccess).Inc()
	w.currentStep--
	return true
}

// Submit re-validates every step in order and, if all pass, sends a snapshot of
// the answers to the Submitter. The first failing step becomes the current step.
// A failed submission leaves the answers and the current step untouched.
func (w *Wizard) Submit(ctx context.Context) (*models.SubmissionResult, error) {
	w.mu.Lock()
	if w.isSubmitting {
		w.mu.Unlock()
		return nil, errors.NewSubmissionInProgressError()
	}
	for i, step := range w.steps {
		if res := step.Validate(w.answers); !res.Valid {
			w.currentStep = i
			w.mu.Unlock()
			metrics.SurveyStepTransitions.WithLabelValues(step.Key, "submit", metrics.OutcomeRejected).Inc()
			return nil, errors.NewStepValidationError(i, step.Key, res.Message)
		}
	}
	w.isSubmitting = true
	snapshot := w.answers.Snapshot()
	w.mu.Unlock()

	result, err := w.send(ctx, snapshot)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.isSubmitting = false
	if err != nil {
		return nil, err
	}
	w.answers = NewAnswers()
	w.currentStep = 0
	return result, nil
}

func (w *Wizard) send(ctx context.Context, snapshot models.SurveyAnswers) (*models.SubmissionResult, error) {
	if w.config.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.config.SubmitTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := w.submitter.Submit(ctx, snapshot)
	metrics.SurveySubmissionDuration.Observe(time.Since(start).Seconds())

	if err == nil && result == nil {
		err = stderrors.New("empty submission response")
	}
	if err != nil {
		// The owning view went away; nothing to surface.
		if stderrors.Is(ctx.Err(), context.Canceled) {
			metrics.SurveySubmissions.WithLabelValues(metrics.OutcomeDiscarded).Inc()
			return nil, err
		}
		var stdErr *errors.StandardError
		switch {
		case stderrors.Is(err, context.DeadlineExceeded):
			stdErr = errors.NewSubmissionTimeoutError(err)
		default:
			if se, isStd := errors.AsStandardError(err); isStd && se.Code == errors.ErrCodeInvalidPayload {
				stdErr = se
			} else {
				stdErr = errors.NewSubmissionFailedError(err)
			}
		}
		metrics.SurveySubmissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		if w.reporter != nil {
			w.reporter.Report(ctx, "survey.submit", stdErr)
		}
		return nil, stdErr
	}

	metrics.SurveySubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	w.logger.Info("survey submitted", map[string]interface{}{
		"surveyId":        result.Survey.ID,
		"recommendations": len(result.Recommendations),
		"durationMs":      time.Since(start).Milliseconds(),
	})
	return result, nil
}

// Reset discards all answers and returns to the first step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.answers = NewAnswers()
	w.currentStep = 0
}

// Draft captures the in-progress survey for persistence at the boundary.
func (w *Wizard) Draft(userID string) models.SurveyDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return models.SurveyDraft{
		UserID:                userID,
		CurrentStep:           w.currentStep,
		TeachingModeConfirmed: w.answers.teachingModeConfirmed,
		Answers:               w.answers.Snapshot(),
		SavedAt:               time.Now().UTC(),
	}
}

// Restore loads a previously saved draft. It is refused while submitting.
func (w *Wizard) Restore(d models.SurveyDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.isSubmitting {
		return errors.NewSubmissionInProgressError()
	}
	w.answers = FromSnapshot(d.Answers, d.TeachingModeConfirmed)
	step := d.CurrentStep
	if step < 0 {
		step = 0
	}
	if step >= len(w.steps) {
		step = len(w.steps) - 1
	}
	w.currentStep = step
	return nil
}
