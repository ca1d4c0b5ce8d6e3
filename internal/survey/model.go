package survey

import (
	"strings"

	"tutor-onboarding/internal/models"
)

// Learning pace options offered by the pace step.
const (
	PaceSlow     = "slow"
	PaceModerate = "moderate"
	PaceFast     = "fast"
	PaceFlexible = "flexible"
)

// LearningPaces is the fixed enumeration accepted by the pace step.
var LearningPaces = []string{PaceSlow, PaceModerate, PaceFast, PaceFlexible}

// Priority keys, in the order the priorities step renders them.
const (
	PriorityExperience    = "experience"
	PriorityCommunication = "communication"
	PriorityQualification = "qualification"
	PriorityPrice         = "price"
	PriorityLocation      = "location"
)

// PriorityKeys lists every key the priorities step requires.
var PriorityKeys = []string{
	PriorityExperience,
	PriorityCommunication,
	PriorityQualification,
	PriorityPrice,
	PriorityLocation,
}

const (
	MaxSubjects          = 5
	MaxCurrentChallenges = 3
	MinRating            = 1
	MaxRating            = 5
)

// Answers accumulates the student's answers while the wizard is in progress.
// Each field has exactly one setter; the wizard owns the value until submission.
type Answers struct {
	gradeLevel             string
	subjects               []string
	goals                  []string
	currentChallenges      []string
	teachingMode           models.TeachingMode
	teachingModeConfirmed  bool
	preferredTeachingStyle []string
	availableTime          []string
	budgetRange            models.BudgetRange
	studyFrequency         int
	learningPace           string
	priorities             models.Priorities
}

// NewAnswers returns an answer set with the defaults the wizard starts from.
func NewAnswers() *Answers {
	return &Answers{
		teachingMode:   models.TeachingModeBoth,
		budgetRange:    models.BudgetRange{Min: 100000, Max: 300000},
		studyFrequency: 2,
	}
}

func (a *Answers) GradeLevel() string { return a.gradeLevel }
func (a *Answers) Subjects() []string { return cloneStrings(a.subjects) }
func (a *Answers) Goals() []string { return cloneStrings(a.goals) }
func (a *Answers) CurrentChallenges() []string { return cloneStrings(a.currentChallenges) }
func (a *Answers) TeachingMode() models.TeachingMode { return a.teachingMode }
func (a *Answers) TeachingModeConfirmed() bool { return a.teachingModeConfirmed }
func (a *Answers) PreferredTeachingStyle() []string { return cloneStrings(a.preferredTeachingStyle) }
func (a *Answers) AvailableTime() []string { return cloneStrings(a.availableTime) }
func (a *Answers) BudgetRange() models.BudgetRange { return a.budgetRange }
func (a *Answers) StudyFrequency() int { return a.studyFrequency }
func (a *Answers) LearningPace() string { return a.learningPace }
func (a *Answers) Priorities() models.Priorities { return a.priorities }

func (a *Answers) SetGradeLevel(level string) {
	a.gradeLevel = strings.TrimSpace(level)
}

// SetSubjects keeps the picker's order as is; the picker prevents duplicates.
func (a *Answers) SetSubjects(subjects []string) {
	a.subjects = cloneStrings(subjects)
}

func (a *Answers) SetGoals(goals []string) {
	a.goals = uniqueStrings(goals)
}

func (a *Answers) SetCurrentChallenges(challenges []string) {
	a.currentChallenges = uniqueStrings(challenges)
}

// SetTeachingMode records the mode and marks the step as explicitly confirmed,
// even when the default BOTH is kept.
func (a *Answers) SetTeachingMode(mode models.TeachingMode) {
	a.teachingMode = mode
	a.teachingModeConfirmed = true
}

func (a *Answers) SetPreferredTeachingStyle(styles []string) {
	a.preferredTeachingStyle = uniqueStrings(styles)
}

func (a *Answers) SetAvailableTime(slots []string) {
	a.availableTime = uniqueStrings(slots)
}

func (a *Answers) SetBudgetRange(min, max int64) {
	a.budgetRange = models.BudgetRange{Min: min, Max: max}
}

func (a *Answers) SetStudyFrequency(perWeek int) {
	a.studyFrequency = perWeek
}

func (a *Answers) SetLearningPace(pace string) {
	a.learningPace = strings.TrimSpace(pace)
}

// SetPriority rates one criterion. Unknown keys are ignored.
func (a *Answers) SetPriority(key string, rating int) {
	switch key {
	case PriorityExperience:
		a.priorities.Experience = rating
	case PriorityCommunication:
		a.priorities.Communication = rating
	case PriorityQualification:
		a.priorities.Qualification = rating
	case PriorityPrice:
		a.priorities.Price = rating
	case PriorityLocation:
		a.priorities.Location = rating
	}
}

// PriorityMap exposes the ratings keyed by priority name.
func (a *Answers) PriorityMap() map[string]int {
	return map[string]int{
		PriorityExperience:    a.priorities.Experience,
		PriorityCommunication: a.priorities.Communication,
		PriorityQualification: a.priorities.Qualification,
		PriorityPrice:         a.priorities.Price,
		PriorityLocation:      a.priorities.Location,
	}
}

// Snapshot deep-copies the answers into the wire form handed to the submitter.
func (a *Answers) Snapshot() models.SurveyAnswers {
	return models.SurveyAnswers{
		GradeLevel:             a.gradeLevel,
		Subjects:               nonNil(cloneStrings(a.subjects)),
		Goals:                  nonNil(cloneStrings(a.goals)),
		CurrentChallenges:      nonNil(cloneStrings(a.currentChallenges)),
		TeachingMode:           a.teachingMode,
		PreferredTeachingStyle: nonNil(cloneStrings(a.preferredTeachingStyle)),
		AvailableTime:          nonNil(cloneStrings(a.availableTime)),
		BudgetRange:            a.budgetRange,
		StudyFrequency:         a.studyFrequency,
		LearningPace:           a.learningPace,
		Priorities:             a.priorities,
	}
}

func (a *Answers) clone() *Answers {
	c := *a
	c.subjects = cloneStrings(a.subjects)
	c.goals = cloneStrings(a.goals)
	c.currentChallenges = cloneStrings(a.currentChallenges)
	c.preferredTeachingStyle = cloneStrings(a.preferredTeachingStyle)
	c.availableTime = cloneStrings(a.availableTime)
	return &c
}

// FromSnapshot rebuilds answers from a stored snapshot, e.g. a restored draft.
func FromSnapshot(s models.SurveyAnswers, teachingModeConfirmed bool) *Answers {
	a := &Answers{
		gradeLevel:             s.GradeLevel,
		subjects:               cloneStrings(s.Subjects),
		goals:                  uniqueStrings(s.Goals),
		currentChallenges:      uniqueStrings(s.CurrentChallenges),
		teachingMode:           s.TeachingMode,
		teachingModeConfirmed:  teachingModeConfirmed,
		preferredTeachingStyle: uniqueStrings(s.PreferredTeachingStyle),
		availableTime:          uniqueStrings(s.AvailableTime),
		budgetRange:            s.BudgetRange,
		studyFrequency:         s.StudyFrequency,
		learningPace:           s.LearningPace,
		priorities:             s.Priorities,
	}
	if a.teachingMode == "" {
		a.teachingMode = models.TeachingModeBoth
	}
	return a
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// uniqueStrings keeps first occurrences in order and drops blanks.
func uniqueStrings(in []string) []string {
	if in == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
