package models

import "time"

// TeachingMode is where lessons take place.
type TeachingMode string

const (
	TeachingModeOnline  TeachingMode = "ONLINE"
	TeachingModeOffline TeachingMode = "OFFLINE"
	TeachingModeBoth    TeachingMode = "BOTH"
)

// Valid reports whether m is one of the known modes.
func (m TeachingMode) Valid() bool {
	switch m {
	case TeachingModeOnline, TeachingModeOffline, TeachingModeBoth:
		return true
	}
	return false
}

// BudgetRange is a per-session price range in VND.
type BudgetRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Priorities rates how much each criterion matters, 1..5. Zero means unrated.
type Priorities struct {
	Experience    int `json:"experience"`
	Communication int `json:"communication"`
	Qualification int `json:"qualification"`
	Price         int `json:"price"`
	Location      int `json:"location"`
}

// SurveyAnswers is the serialized, immutable form of a finished onboarding
// survey as it is handed to the submission service.
type SurveyAnswers struct {
	GradeLevel             string       `json:"gradeLevel"`
	Subjects               []string     `json:"subjects"`
	Goals                  []string     `json:"goals"`
	CurrentChallenges      []string     `json:"currentChallenges"`
	TeachingMode           TeachingMode `json:"teachingMode"`
	PreferredTeachingStyle []string     `json:"preferredTeachingStyle"`
	AvailableTime          []string     `json:"availableTime"`
	BudgetRange            BudgetRange  `json:"budgetRange"`
	StudyFrequency         int          `json:"studyFrequency"`
	LearningPace           string       `json:"learningPace"`
	Priorities             Priorities   `json:"priorities"`
}

// SurveyDraft is an unfinished survey persisted between visits.
type SurveyDraft struct {
	UserID                string        `json:"userId"`
	CurrentStep           int           `json:"currentStep"`
	TeachingModeConfirmed bool          `json:"teachingModeConfirmed"`
	Answers               SurveyAnswers `json:"answers"`
	SavedAt               time.Time     `json:"savedAt"`
}

// SubmittedSurvey is the server's record of a stored survey.
type SubmittedSurvey struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// SubmissionResult is returned by the submission service.
type SubmissionResult struct {
	Survey          SubmittedSurvey       `json:"survey"`
	Recommendations []TutorRecommendation `json:"recommendations"`
	AIAnalysis      *string               `json:"aiAnalysis,omitempty"`
}
