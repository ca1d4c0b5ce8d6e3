package recommendation

import (
	"context"
	stderrors "errors"
	"time"

	"tutor-onboarding/internal/common/errors"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/common/metrics"
	"tutor-onboarding/internal/explanation"
	"tutor-onboarding/internal/models"
)

// Querier is the recommendation query service.
type Querier interface {
	QueryTutors(ctx context.Context, q models.RecommendationQuery) (*models.TutorRecommendationPage, error)
	QueryPosts(ctx context.Context, q models.RecommendationQuery) (*models.PostRecommendationPage, error)
}

// Service turns raw recommendation pages into ranked, explained candidates.
type Service struct {
	config      *Config
	querier     Querier
	fetcher     explanation.Fetcher
	synthesizer *explanation.Synthesizer
	reporter    *errors.Reporter
	logger      logger.Logger
}

// NewService wires a recommendation service. fetcher may be nil when AI
// explanations are not used.
func NewService(cfg *Config, querier Querier, fetcher explanation.Fetcher, reporter *errors.Reporter, log logger.Logger) *Service {
	if cfg == nil {
		cfg = LoadConfig(nil)
	}
	return &Service{
		config:      cfg,
		querier:     querier,
		fetcher:     fetcher,
		synthesizer: explanation.NewSynthesizer(cfg.Locale),
		reporter:    reporter,
		logger:      logger.ForComponent(log, "recommendation"),
	}
}

// TutorsForStudent lists tutors matching a student's survey. On failure the
// returned Result is empty and marked Failed, alongside the error.
func (s *Service) TutorsForStudent(ctx context.Context, p Params) (*Result, error) {
	p = s.withDefaults(p)
	page, err := s.querier.QueryTutors(ctx, s.query(p))
	if err != nil {
		return s.failed(ctx, KindTutor, err)
	}
	if page == nil {
		page = &models.TutorRecommendationPage{}
	}
	return &Result{
		Kind:       KindTutor,
		Candidates: s.rank(KindTutor, NormalizeTutors(page.Items), p),
		Total:      page.Total,
	}, nil
}

// PostsForTutor lists student posts matching a tutor.
func (s *Service) PostsForTutor(ctx context.Context, p Params) (*Result, error) {
	p = s.withDefaults(p)
	page, err := s.querier.QueryPosts(ctx, s.query(p))
	if err != nil {
		return s.failed(ctx, KindPost, err)
	}
	if page == nil {
		page = &models.PostRecommendationPage{}
	}
	return &Result{
		Kind:       KindPost,
		Candidates: s.rank(KindPost, NormalizePosts(page.Items), p),
		Total:      page.Total,
	}, nil
}

// FromSubmission ranks the tutors returned with a survey submission.
func (s *Service) FromSubmission(res *models.SubmissionResult, p Params) *Result {
	p = s.withDefaults(p)
	if res == nil {
		return &Result{Kind: KindTutor, Candidates: []RankedCandidate{}}
	}
	return &Result{
		Kind:       KindTutor,
		Candidates: s.rank(KindTutor, NormalizeTutors(res.Recommendations), p),
		Total:      len(res.Recommendations),
		AIAnalysis: res.AIAnalysis,
	}
}

// NewExplanationCache builds the on-demand explanation cache for one displayed
// candidate. sourceID is the student (or tutor) the list was computed for.
func (s *Service) NewExplanationCache(c RankedCandidate, sourceID string) *explanation.Cache {
	synthesized := ""
	if c.Explanation != nil {
		synthesized = *c.Explanation
	}
	target := explanation.Target{SourceID: sourceID, TargetID: c.ID, Score: c.Score}
	return explanation.NewCache(target, synthesized, s.fetcher, s.reporter, s.logger, s.config.FetchTimeout)
}

// Explain returns the rule-based explanation of c.
func (s *Service) Explain(c RankedCandidate) string {
	return s.synthesizer.Synthesize(c.Score, c.Percentages, explanation.Context{
		Subjects:     c.Display.Subjects,
		GradeLevels:  c.Display.GradeLevels,
		PriceMin:     c.Display.PriceMin,
		PriceMax:     c.Display.PriceMax,
		TeachingMode: c.Display.TeachingMode,
	})
}

func (s *Service) rank(kind Kind, candidates []RankedCandidate, p Params) []RankedCandidate {
	start := time.Now()
	ranked := Rank(candidates, p.MinScore, p.Limit)
	for i := range ranked {
		text := s.Explain(ranked[i])
		ranked[i].Explanation = &text
	}
	metrics.RankingDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	metrics.RankingResultSize.WithLabelValues(string(kind)).Observe(float64(len(ranked)))

	s.logger.Info("ranking completed", map[string]interface{}{
		"kind":        string(kind),
		"inputCount":  len(candidates),
		"outputCount": len(ranked),
		"minScore":    p.MinScore,
		"limit":       p.Limit,
		"durationMs":  time.Since(start).Milliseconds(),
	})
	return ranked
}

func (s *Service) failed(ctx context.Context, kind Kind, err error) (*Result, error) {
	empty := &Result{Kind: kind, Candidates: []RankedCandidate{}, Failed: true}
	if stderrors.Is(err, context.Canceled) {
		return empty, err
	}
	metrics.RecommendationFetchFailed.WithLabelValues(string(kind)).Inc()
	stdErr := errors.NewRecommendationFetchFailedError(string(kind), err)
	if s.reporter != nil {
		s.reporter.Report(ctx, "recommendation.fetch", stdErr)
	}
	return empty, stdErr
}

func (s *Service) withDefaults(p Params) Params {
	if p.Limit == 0 {
		p.Limit = s.config.DefaultLimit
	}
	if p.MinScore == 0 && !p.MinScoreSet {
		p.MinScore = s.config.DefaultMinScore
	}
	return p
}

func (s *Service) query(p Params) models.RecommendationQuery {
	return models.RecommendationQuery{
		SubjectOrPostID: p.SubjectOrPostID,
		Limit:           p.Limit,
		MinScore:        p.MinScore,
	}
}
