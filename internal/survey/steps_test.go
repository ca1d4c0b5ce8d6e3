package survey

import (
	"testing"

	"tutor-onboarding/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func fillValidAnswers(a *Answers) {
	a.SetGradeLevel("Lớp 10")
	a.SetSubjects([]string{"Toán học"})
	a.SetGoals([]string{"Cải thiện điểm số"})
	a.SetCurrentChallenges([]string{"Mất gốc kiến thức"})
	a.SetTeachingMode(models.TeachingModeOnline)
	a.SetPreferredTeachingStyle([]string{"Kiên nhẫn, giải thích kỹ"})
	a.SetAvailableTime([]string{"Tối thứ 2", "Sáng chủ nhật"})
	a.SetBudgetRange(150000, 250000)
	a.SetStudyFrequency(3)
	a.SetLearningPace(PaceModerate)
	for _, key := range PriorityKeys {
		a.SetPriority(key, 4)
	}
}

func validAnswers() *Answers {
	a := NewAnswers()
	fillValidAnswers(a)
	return a
}

// ==========================
// Model Tests
// ==========================

func TestNewAnswers_Defaults(t *testing.T) {
	a := NewAnswers()

	assert.Equal(t, models.TeachingModeBoth, a.TeachingMode())
	assert.False(t, a.TeachingModeConfirmed())
	assert.Equal(t, 2, a.StudyFrequency())
	assert.Equal(t, models.BudgetRange{Min: 100000, Max: 300000}, a.BudgetRange())
	assert.Equal(t, models.Priorities{}, a.Priorities())
	assert.Empty(t, a.Subjects())
}

func TestAnswers_SetSemantics(t *testing.T) {
	a := NewAnswers()
	a.SetGoals([]string{"Thi đại học", " ", "Thi đại học", "Học giỏi hơn"})
	a.SetSubjects([]string{"Vật lý", "Toán học"})

	assert.Equal(t, []string{"Thi đại học", "Học giỏi hơn"}, a.Goals())
	assert.Equal(t, []string{"Vật lý", "Toán học"}, a.Subjects(), "subject order is kept")
}

func TestAnswers_SnapshotIsDeepCopy(t *testing.T) {
	subjects := []string{"Toán học"}
	a := validAnswers()
	a.SetSubjects(subjects)
	subjects[0] = "changed by caller"

	snap := a.Snapshot()
	snap.Subjects[0] = "changed after handoff"

	assert.Equal(t, []string{"Toán học"}, a.Subjects())
}

func TestAnswers_SnapshotRoundTrip(t *testing.T) {
	a := validAnswers()
	restored := FromSnapshot(a.Snapshot(), a.TeachingModeConfirmed())

	assert.Equal(t, a.Snapshot(), restored.Snapshot())
	assert.True(t, restored.TeachingModeConfirmed())
}

func TestAnswers_SnapshotNeverNilSlices(t *testing.T) {
	snap := NewAnswers().Snapshot()
	assert.NotNil(t, snap.Subjects)
	assert.NotNil(t, snap.AvailableTime)
}

// ==========================
// Validator Tests
// ==========================

func TestDefaultSteps_Order(t *testing.T) {
	steps := DefaultSteps()
	require.Len(t, steps, 11)

	keys := make([]string, len(steps))
	for i, s := range steps {
		keys[i] = s.Key
	}
	assert.Equal(t, []string{
		StepGradeLevel, StepSubjects, StepGoals, StepCurrentChallenges, StepTeachingMode,
		StepPreferredTeachingStyle, StepAvailableTime, StepBudgetRange, StepStudyFrequency,
		StepLearningPace, StepPriorities,
	}, keys)
}

func TestDefaultSteps_AllValidForCompleteAnswers(t *testing.T) {
	a := validAnswers()
	for _, step := range DefaultSteps() {
		res := step.Validate(a)
		assert.True(t, res.Valid, "step %s: %s", step.Key, res.Message)
		assert.Empty(t, res.Message)
	}
}

func TestValidators_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *Answers)
		validate func(a *Answers) ValidationResult
	}{
		{"empty grade level", func(a *Answers) { a.SetGradeLevel("  ") }, ValidateGradeLevel},
		{"no subjects", func(a *Answers) { a.SetSubjects(nil) }, ValidateSubjects},
		{"too many subjects", func(a *Answers) {
			a.SetSubjects([]string{"Toán", "Lý", "Hóa", "Sinh", "Văn", "Anh"})
		}, ValidateSubjects},
		{"blank subject", func(a *Answers) { a.SetSubjects([]string{"Toán", ""}) }, ValidateSubjects},
		{"no goals", func(a *Answers) { a.SetGoals([]string{}) }, ValidateGoals},
		{"no challenges", func(a *Answers) { a.SetCurrentChallenges(nil) }, ValidateCurrentChallenges},
		{"too many challenges", func(a *Answers) {
			a.SetCurrentChallenges([]string{"a", "b", "c", "d"})
		}, ValidateCurrentChallenges},
		{"unknown teaching mode", func(a *Answers) { a.SetTeachingMode("HYBRID") }, ValidateTeachingMode},
		{"no teaching style", func(a *Answers) { a.SetPreferredTeachingStyle(nil) }, ValidatePreferredTeachingStyle},
		{"no available time", func(a *Answers) { a.SetAvailableTime(nil) }, ValidateAvailableTime},
		{"frequency zero", func(a *Answers) { a.SetStudyFrequency(0) }, ValidateStudyFrequency},
		{"frequency six", func(a *Answers) { a.SetStudyFrequency(6) }, ValidateStudyFrequency},
		{"empty pace", func(a *Answers) { a.SetLearningPace("") }, ValidateLearningPace},
		{"unknown pace", func(a *Answers) { a.SetLearningPace("turbo") }, ValidateLearningPace},
		{"unrated priority", func(a *Answers) { a.SetPriority(PriorityLocation, 0) }, ValidatePriorities},
		{"priority too high", func(a *Answers) { a.SetPriority(PriorityPrice, 6) }, ValidatePriorities},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAnswers()
			tt.mutate(a)

			res := tt.validate(a)
			assert.False(t, res.Valid)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestValidateTeachingMode_RequiresConfirmation(t *testing.T) {
	a := NewAnswers()
	res := ValidateTeachingMode(a)
	assert.False(t, res.Valid, "default BOTH is not a confirmation")

	a.SetTeachingMode(models.TeachingModeBoth)
	assert.True(t, ValidateTeachingMode(a).Valid)
}

func TestValidateBudgetRange(t *testing.T) {
	tests := []struct {
		name  string
		min   int64
		max   int64
		valid bool
	}{
		{"min below max", 100000, 200000, true},
		{"zero min", 0, 1, true},
		{"min equals max", 200000, 200000, false},
		{"min above max", 300000, 200000, false},
		{"both zero", 0, 0, false},
		{"negative min", -1, 200000, false},
		{"negative max", 0, -5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswers()
			a.SetBudgetRange(tt.min, tt.max)
			assert.Equal(t, tt.valid, ValidateBudgetRange(a).Valid)
		})
	}
}

func TestValidatePriorityMap(t *testing.T) {
	full := func() map[string]int {
		return map[string]int{
			PriorityExperience:    5,
			PriorityCommunication: 4,
			PriorityQualification: 3,
			PriorityPrice:         2,
			PriorityLocation:      1,
		}
	}

	assert.True(t, ValidatePriorityMap(full()).Valid)

	for _, key := range PriorityKeys {
		t.Run("missing "+key, func(t *testing.T) {
			m := full()
			delete(m, key)
			assert.False(t, ValidatePriorityMap(m).Valid)
		})
		t.Run("zero "+key, func(t *testing.T) {
			m := full()
			m[key] = 0
			assert.False(t, ValidatePriorityMap(m).Valid)
		})
	}

	assert.False(t, ValidatePriorityMap(nil).Valid)
}
