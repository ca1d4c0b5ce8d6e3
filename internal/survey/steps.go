package survey

import (
	"fmt"
	"strings"
)

// Step keys, in wizard order.
const (
	StepGradeLevel             = "gradeLevel"
	StepSubjects               = "subjects"
	StepGoals                  = "goals"
	StepCurrentChallenges      = "currentChallenges"
	StepTeachingMode           = "teachingMode"
	StepPreferredTeachingStyle = "preferredTeachingStyle"
	StepAvailableTime          = "availableTime"
	StepBudgetRange            = "budgetRange"
	StepStudyFrequency         = "studyFrequency"
	StepLearningPace           = "learningPace"
	StepPriorities             = "priorities"
)

// ValidationResult is the outcome of a step validator.
type ValidationResult struct {
	Valid   bool
	Message string
}

func ok() ValidationResult { return ValidationResult{Valid: true} }

func invalid(msg string) ValidationResult { return ValidationResult{Message: msg} }

// Step is one page of the onboarding survey.
type Step struct {
	Key      string
	Title    string
	Validate func(a *Answers) ValidationResult
}

// DefaultSteps returns the eleven onboarding steps in order.
func DefaultSteps() []Step {
	return []Step{
		{Key: StepGradeLevel, Title: "Bạn đang học lớp mấy?", Validate: ValidateGradeLevel},
		{Key: StepSubjects, Title: "Bạn cần học môn gì?", Validate: ValidateSubjects},
		{Key: StepGoals, Title: "Mục tiêu học tập của bạn", Validate: ValidateGoals},
		{Key: StepCurrentChallenges, Title: "Khó khăn hiện tại", Validate: ValidateCurrentChallenges},
		{Key: StepTeachingMode, Title: "Hình thức học", Validate: ValidateTeachingMode},
		{Key: StepPreferredTeachingStyle, Title: "Phong cách giảng dạy mong muốn", Validate: ValidatePreferredTeachingStyle},
		{Key: StepAvailableTime, Title: "Thời gian rảnh", Validate: ValidateAvailableTime},
		{Key: StepBudgetRange, Title: "Ngân sách mỗi buổi", Validate: ValidateBudgetRange},
		{Key: StepStudyFrequency, Title: "Số buổi mỗi tuần", Validate: ValidateStudyFrequency},
		{Key: StepLearningPace, Title: "Tốc độ học", Validate: ValidateLearningPace},
		{Key: StepPriorities, Title: "Điều bạn quan tâm nhất ở gia sư", Validate: ValidatePriorities},
	}
}

// ValidateGradeLevel requires a grade level.
func ValidateGradeLevel(a *Answers) ValidationResult {
	if strings.TrimSpace(a.gradeLevel) == "" {
		return invalid("Vui lòng chọn lớp học của bạn")
	}
	return ok()
}

// ValidateSubjects requires one to MaxSubjects non-blank subjects.
func ValidateSubjects(a *Answers) ValidationResult {
	if len(a.subjects) == 0 {
		return invalid("Vui lòng chọn ít nhất một môn học")
	}
	if len(a.subjects) > MaxSubjects {
		return invalid(fmt.Sprintf("Chỉ được chọn tối đa %d môn học", MaxSubjects))
	}
	for _, s := range a.subjects {
		if strings.TrimSpace(s) == "" {
			return invalid("Tên môn học không được để trống")
		}
	}
	return ok()
}

// ValidateGoals requires at least one goal.
func ValidateGoals(a *Answers) ValidationResult {
	if len(a.goals) == 0 {
		return invalid("Vui lòng chọn ít nhất một mục tiêu")
	}
	return ok()
}

// ValidateCurrentChallenges requires one to MaxCurrentChallenges challenges.
func ValidateCurrentChallenges(a *Answers) ValidationResult {
	if len(a.currentChallenges) == 0 {
		return invalid("Vui lòng chọn ít nhất một khó khăn")
	}
	if len(a.currentChallenges) > MaxCurrentChallenges {
		return invalid(fmt.Sprintf("Chỉ được chọn tối đa %d khó khăn", MaxCurrentChallenges))
	}
	return ok()
}

// ValidateTeachingMode requires an explicit choice even though BOTH is preselected.
func ValidateTeachingMode(a *Answers) ValidationResult {
	if !a.teachingModeConfirmed {
		return invalid("Vui lòng xác nhận hình thức học")
	}
	if !a.teachingMode.Valid() {
		return invalid("Hình thức học không hợp lệ")
	}
	return ok()
}

// ValidatePreferredTeachingStyle requires at least one style.
func ValidatePreferredTeachingStyle(a *Answers) ValidationResult {
	if len(a.preferredTeachingStyle) == 0 {
		return invalid("Vui lòng chọn ít nhất một phong cách giảng dạy")
	}
	return ok()
}

// ValidateAvailableTime requires at least one time slot.
func ValidateAvailableTime(a *Answers) ValidationResult {
	if len(a.availableTime) == 0 {
		return invalid("Vui lòng chọn ít nhất một khung giờ")
	}
	return ok()
}

// ValidateBudgetRange requires non-negative bounds and min strictly below max.
func ValidateBudgetRange(a *Answers) ValidationResult {
	b := a.budgetRange
	if b.Min < 0 || b.Max < 0 {
		return invalid("Ngân sách không được âm")
	}
	if b.Min >= b.Max {
		return invalid("Ngân sách tối thiểu phải nhỏ hơn ngân sách tối đa")
	}
	return ok()
}

// ValidateStudyFrequency requires 1 to 5 sessions a week.
func ValidateStudyFrequency(a *Answers) ValidationResult {
	if a.studyFrequency < 1 || a.studyFrequency > 5 {
		return invalid("Số buổi mỗi tuần phải từ 1 đến 5")
	}
	return ok()
}

// ValidateLearningPace requires one of LearningPaces.
func ValidateLearningPace(a *Answers) ValidationResult {
	for _, p := range LearningPaces {
		if a.learningPace == p {
			return ok()
		}
	}
	return invalid("Vui lòng chọn tốc độ học")
}

// ValidatePriorities rates every key in PriorityKeys.
func ValidatePriorities(a *Answers) ValidationResult {
	return ValidatePriorityMap(a.PriorityMap())
}

// ValidatePriorityMap checks that every priority key is present and rated 1..5.
func ValidatePriorityMap(ratings map[string]int) ValidationResult {
	for _, key := range PriorityKeys {
		v, present := ratings[key]
		if !present || v == 0 {
			return invalid("Vui lòng đánh giá mức độ quan trọng cho tất cả tiêu chí")
		}
		if v < MinRating || v > MaxRating {
			return invalid(fmt.Sprintf("Mức độ quan trọng phải từ %d đến %d", MinRating, MaxRating))
		}
	}
	return ok()
}
