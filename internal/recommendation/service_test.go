package recommendation

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"tutor-onboarding/internal/common/errors"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/explanation"
	"tutor-onboarding/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) QueryTutors(ctx context.Context, q models.RecommendationQuery) (*models.TutorRecommendationPage, error) {
	args := m.Called(ctx, q)
	if p := args.Get(0); p != nil {
		return p.(*models.TutorRecommendationPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuerier) QueryPosts(ctx context.Context, q models.RecommendationQuery) (*models.PostRecommendationPage, error) {
	args := m.Called(ctx, q)
	if p := args.Get(0); p != nil {
		return p.(*models.PostRecommendationPage), args.Error(1)
	}
	return nil, args.Error(1)
}

type notificationRecorder struct {
	mu    sync.Mutex
	items []errors.Notification
}

func (r *notificationRecorder) Notify(_ context.Context, n errors.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func createTestService(t *testing.T, q Querier, f explanation.Fetcher) (*Service, *notificationRecorder) {
	rec := &notificationRecorder{}
	log := logger.NewTestLogger(t)
	cfg := &Config{DefaultLimit: 10, Locale: explanation.LocaleVI, FetchTimeout: time.Second}
	return NewService(cfg, q, f, errors.NewReporter(log, rec), log), rec
}

func tutorPage() *models.TutorRecommendationPage {
	return &models.TutorRecommendationPage{
		Items: []models.TutorRecommendation{
			{TutorID: "t-low", MatchScore: 0.40},
			{TutorID: "t-a", MatchScore: 0.92, Tutor: &models.TutorProfile{Subjects: []string{"Toán học"}},
				MatchDetails: models.CriterionPercentages{SubjectMatch: 100}},
			{TutorID: "t-b", MatchScore: 92},
		},
		Total: 3,
	}
}

// ==========================
// Service Tests
// ==========================

func TestService_TutorsForStudent(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryTutors", mock.Anything, models.RecommendationQuery{SubjectOrPostID: "Toán học", Limit: 10, MinScore: 0.5}).
		Return(tutorPage(), nil).Once()
	svc, rec := createTestService(t, q, nil)

	res, err := svc.TutorsForStudent(context.Background(), Params{SubjectOrPostID: "Toán học", MinScore: 0.5})
	require.NoError(t, err)

	assert.False(t, res.Failed)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, []string{"t-a", "t-b"}, ids(res.Candidates))
	for _, c := range res.Candidates {
		assert.True(t, c.IsTopMatch)
		require.NotNil(t, c.Explanation)
	}
	assert.Equal(t, "Rất phù hợp với yêu cầu của bạn: dạy đúng môn Toán học.", *res.Candidates[0].Explanation)
	assert.Equal(t, "Rất phù hợp với yêu cầu của bạn.", *res.Candidates[1].Explanation)
	assert.Empty(t, rec.items)
	q.AssertExpectations(t)
}

func TestService_PostsForTutor(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryPosts", mock.Anything, mock.AnythingOfType("models.RecommendationQuery")).
		Return(&models.PostRecommendationPage{
			Items: []models.PostRecommendation{
				{PostID: "p-1", Compatibility: 55},
				{PostID: "p-2", Compatibility: 0.81},
			},
			Total: 2,
		}, nil)
	svc, _ := createTestService(t, q, nil)

	res, err := svc.PostsForTutor(context.Background(), Params{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, KindPost, res.Kind)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "p-2", res.Candidates[0].ID)
	assert.Equal(t, 1, res.Candidates[0].Rank)
}

func TestService_MinScoreDefaultAndExplicitZero(t *testing.T) {
	page := &models.TutorRecommendationPage{
		Items: []models.TutorRecommendation{
			{TutorID: "t-high", MatchScore: 0.92},
			{TutorID: "t-weak", MatchScore: 0.30},
		},
		Total: 2,
	}
	q := &mockQuerier{}
	q.On("QueryTutors", mock.Anything, mock.Anything).Return(page, nil)
	log := logger.NewTestLogger(t)
	cfg := &Config{DefaultLimit: 10, DefaultMinScore: 0.5, Locale: explanation.LocaleVI, FetchTimeout: time.Second}
	svc := NewService(cfg, q, nil, nil, log)

	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{"unset takes the configured default", Params{Limit: 10}, []string{"t-high"}},
		{"explicit zero keeps everything", Params{MinScore: 0, MinScoreSet: true, Limit: 10}, []string{"t-high", "t-weak"}},
		{"explicit value wins", Params{MinScore: 0.2, MinScoreSet: true, Limit: 10}, []string{"t-high", "t-weak"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.TutorsForStudent(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Candidates))

			fromSubmission := svc.FromSubmission(&models.SubmissionResult{Recommendations: page.Items}, tt.params)
			assert.Equal(t, tt.want, ids(fromSubmission.Candidates))
		})
	}
}

func TestService_FetchFailureDegradesToEmpty(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryTutors", mock.Anything, mock.Anything).Return(nil, stderrors.New("connection reset"))
	svc, rec := createTestService(t, q, nil)

	res, err := svc.TutorsForStudent(context.Background(), Params{})
	require.Error(t, err)

	assert.True(t, errors.HasCode(err, errors.ErrCodeRecommendationFetchFailed))
	require.NotNil(t, res)
	assert.True(t, res.Failed)
	assert.NotNil(t, res.Candidates)
	assert.Empty(t, res.Candidates)
	require.Len(t, rec.items, 1)
	assert.Equal(t, errors.LevelWarning, rec.items[0].Level)
}

func TestService_CancelledFetchIsNotReported(t *testing.T) {
	q := &mockQuerier{}
	q.On("QueryPosts", mock.Anything, mock.Anything).Return(nil, context.Canceled)
	svc, rec := createTestService(t, q, nil)

	res, err := svc.PostsForTutor(context.Background(), Params{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, res.Failed)
	assert.Empty(t, rec.items)
}

func TestService_FromSubmission(t *testing.T) {
	svc, _ := createTestService(t, &mockQuerier{}, nil)
	analysis := "Bạn nên ưu tiên gia sư có kinh nghiệm luyện thi."

	res := svc.FromSubmission(&models.SubmissionResult{
		Survey:          models.SubmittedSurvey{ID: "s-1"},
		Recommendations: tutorPage().Items,
		AIAnalysis:      &analysis,
	}, Params{MinScore: 0.5})

	assert.Equal(t, []string{"t-a", "t-b"}, ids(res.Candidates))
	assert.Equal(t, &analysis, res.AIAnalysis)

	empty := svc.FromSubmission(nil, Params{})
	assert.Empty(t, empty.Candidates)
}

func TestService_NewExplanationCache(t *testing.T) {
	var got models.ExplanationRequest
	fetcher := explanation.FetcherFunc(func(ctx context.Context, req models.ExplanationRequest) (*models.ExplanationResponse, error) {
		got = req
		return &models.ExplanationResponse{Explanation: "AI"}, nil
	})
	svc, _ := createTestService(t, &mockQuerier{}, fetcher)

	res := svc.FromSubmission(&models.SubmissionResult{Recommendations: tutorPage().Items}, Params{})
	top := res.Candidates[0]

	cache := svc.NewExplanationCache(top, "student-1")
	assert.Equal(t, *top.Explanation, cache.Explanation())

	require.NoError(t, cache.Fetch(context.Background()))
	assert.Equal(t, "AI", cache.Explanation())
	assert.Equal(t, "student-1", got.SourceID)
	assert.Equal(t, top.ID, got.TargetID)
	assert.Equal(t, top.Score, got.Score)
}
