package models

// CriterionPercentages carries the upstream per-criterion match percentages
// (0..100) and the semantic similarity (0..1).
type CriterionPercentages struct {
	SubjectMatch  float64 `json:"subjectMatch"`
	LevelMatch    float64 `json:"levelMatch"`
	PriceMatch    float64 `json:"priceMatch"`
	ScheduleMatch float64 `json:"scheduleMatch"`
	SemanticScore float64 `json:"semanticScore"`
}

// TutorProfile is the tutor data embedded in a tutor recommendation.
// Every field is optional upstream.
type TutorProfile struct {
	FullName        string       `json:"fullName,omitempty"`
	Avatar          string       `json:"avatar,omitempty"`
	Headline        string       `json:"headline,omitempty"`
	Subjects        []string     `json:"subjects,omitempty"`
	GradeLevels     []string     `json:"gradeLevels,omitempty"`
	PriceMin        *int64       `json:"priceMin,omitempty"`
	PriceMax        *int64       `json:"priceMax,omitempty"`
	TeachingMode    TeachingMode `json:"teachingMode,omitempty"`
	Rating          *float64     `json:"rating,omitempty"`
	ExperienceYears *int         `json:"experienceYears,omitempty"`
}

// TutorRecommendation is the tutor-oriented raw candidate shape, returned when a
// student asks for tutors. MatchScore arrives either as 0..1 or 0..100.
type TutorRecommendation struct {
	TutorID      string               `json:"tutorId"`
	Tutor        *TutorProfile        `json:"tutor,omitempty"`
	MatchScore   float64              `json:"matchScore"`
	MatchDetails CriterionPercentages `json:"matchDetails"`
	Explanation  string               `json:"explanation,omitempty"`
}

// HourlyRate is the price range a student post offers, in VND.
type HourlyRate struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// StudentPost is the post data embedded in a post recommendation.
type StudentPost struct {
	Title        string       `json:"title,omitempty"`
	StudentName  string       `json:"studentName,omitempty"`
	Avatar       string       `json:"avatar,omitempty"`
	Subjects     []string     `json:"subjects,omitempty"`
	GradeLevel   string       `json:"gradeLevel,omitempty"`
	HourlyRate   *HourlyRate  `json:"hourlyRate,omitempty"`
	TeachingMode TeachingMode `json:"teachingMode,omitempty"`
	Location     string       `json:"location,omitempty"`
}

// PostRecommendation is the student-post-oriented raw candidate shape, returned
// when a tutor asks for matching posts. Compatibility arrives as 0..1 or 0..100.
type PostRecommendation struct {
	PostID        string               `json:"postId"`
	Post          *StudentPost         `json:"post,omitempty"`
	Compatibility float64              `json:"compatibility"`
	MatchDetails  CriterionPercentages `json:"matchDetails"`
	Explanation   string               `json:"explanation,omitempty"`
}

// RecommendationQuery parameterizes the recommendation query service.
type RecommendationQuery struct {
	SubjectOrPostID string  `json:"subjectOrPostId,omitempty"`
	Limit           int     `json:"limit"`
	MinScore        float64 `json:"minScore"`
}

// TutorRecommendationPage is one page of tutor candidates.
type TutorRecommendationPage struct {
	Items []TutorRecommendation `json:"items"`
	Total int                   `json:"total"`
}

// PostRecommendationPage is one page of student-post candidates.
type PostRecommendationPage struct {
	Items []PostRecommendation `json:"items"`
	Total int                  `json:"total"`
}
