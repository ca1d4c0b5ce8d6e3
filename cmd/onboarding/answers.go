package main

import (
	"tutor-onboarding/internal/models"
	"tutor-onboarding/internal/survey"
)

// applyStep copies the answer for one wizard step from the answers file.
// Fields the file leaves empty keep their current (default or resumed) value.
func applyStep(a *survey.Answers, key string, in models.SurveyAnswers) {
	switch key {
	case survey.StepGradeLevel:
		if in.GradeLevel != "" {
			a.SetGradeLevel(in.GradeLevel)
		}
	case survey.StepSubjects:
		if len(in.Subjects) > 0 {
			a.SetSubjects(in.Subjects)
		}
	case survey.StepGoals:
		if len(in.Goals) > 0 {
			a.SetGoals(in.Goals)
		}
	case survey.StepCurrentChallenges:
		if len(in.CurrentChallenges) > 0 {
			a.SetCurrentChallenges(in.CurrentChallenges)
		}
	case survey.StepTeachingMode:
		if in.TeachingMode != "" {
			a.SetTeachingMode(in.TeachingMode)
		}
	case survey.StepPreferredTeachingStyle:
		if len(in.PreferredTeachingStyle) > 0 {
			a.SetPreferredTeachingStyle(in.PreferredTeachingStyle)
		}
	case survey.StepAvailableTime:
		if len(in.AvailableTime) > 0 {
			a.SetAvailableTime(in.AvailableTime)
		}
	case survey.StepBudgetRange:
		if in.BudgetRange != (models.BudgetRange{}) {
			a.SetBudgetRange(in.BudgetRange.Min, in.BudgetRange.Max)
		}
	case survey.StepStudyFrequency:
		if in.StudyFrequency != 0 {
			a.SetStudyFrequency(in.StudyFrequency)
		}
	case survey.StepLearningPace:
		if in.LearningPace != "" {
			a.SetLearningPace(in.LearningPace)
		}
	case survey.StepPriorities:
		ratings := map[string]int{
			survey.PriorityExperience:    in.Priorities.Experience,
			survey.PriorityCommunication: in.Priorities.Communication,
			survey.PriorityQualification: in.Priorities.Qualification,
			survey.PriorityPrice:         in.Priorities.Price,
			survey.PriorityLocation:      in.Priorities.Location,
		}
		for _, k := range survey.PriorityKeys {
			if ratings[k] != 0 {
				a.SetPriority(k, ratings[k])
			}
		}
	}
}
